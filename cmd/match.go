package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/easyjobfind/easyjobfind/internal/logger"
	"github.com/easyjobfind/easyjobfind/internal/matching"
	"github.com/easyjobfind/easyjobfind/internal/resume"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptOffersToFile = "Dump offers to file"
	PromptQuit         = "Quit"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume-file>",
	Short: "Analyse a resume file and print the best matching job offers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Bool("no-prompt", false, "print the offers and exit without the interactive menu")
}

func match(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading the resume file", zap.Error(err))
	}

	text, err := resume.ExtractText(path, data)
	if err != nil {
		logger.Fatal("extracting resume text", zap.String("file", path), zap.Error(err))
	}

	extractor, err := newExtractor(ctx, config.Gemini, logger)
	if err != nil {
		logger.Fatal("building the resume analyzer", zap.Error(err))
	}

	profile := extractor.Analyze(ctx, text)

	fmt.Printf("Profile: %s (%s)\n", profile.JobTitle, profile.ExperienceLevel)
	fmt.Printf("Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Printf("Strengths: %s\n\n", strings.Join(profile.Strengths, ", "))

	orchestrator := newOrchestrator(config.FranceTravail, logger)

	matches := orchestrator.FindMatches(ctx, profile)
	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no offers found"))
		return
	}

	for i, offer := range matches {
		fmt.Printf("%d. [%d] %s\n", i+1, offer.MatchingScore, offer.Title)
		fmt.Printf("   %s / %s / %s\n", offer.Company.Name, offer.Location.Label, offer.Contract)
		fmt.Printf("   %s\n", offer.URL)
	}
	fmt.Println()

	if cmd.Flag("no-prompt").Value.String() == "true" {
		return
	}

	prompt := promptui.Select{
		Label: "What now?",
		Items: []string{PromptOffersToFile, PromptQuit},
	}

	_, action, err := prompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	switch action {
	case PromptOffersToFile:
		filename, err := dumpOffers(matches)
		if err != nil {
			logger.Fatal("dumping offers to file", zap.Error(err))
		}
		logger.Info("dumping offers to file", zap.String("filename", filename))
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
	}
}

func dumpOffers(matches []matching.ScoredOffer) (string, error) {
	file, err := os.CreateTemp("", app+"-offers-*.json")
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	pretty, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal offers: %w", err)
	}

	if _, err := file.Write(pretty); err != nil {
		return "", fmt.Errorf("write offers: %w", err)
	}

	return file.Name(), nil
}
