package cmd

import (
	"context"

	"github.com/easyjobfind/easyjobfind/internal/ai/gemini"
	"github.com/easyjobfind/easyjobfind/internal/francetravail"
	"github.com/easyjobfind/easyjobfind/internal/profile"
	"github.com/easyjobfind/easyjobfind/internal/search"
	"github.com/easyjobfind/easyjobfind/internal/secrets"
	"go.uber.org/zap"
)

// newExtractor builds the resume analyzer. A missing Gemini key is not
// fatal: analysis degrades to keyword extraction.
func newExtractor(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) (*profile.Extractor, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Warn("gemini api key not found, resume analysis will use keyword fallback",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or gemini.api-key-file in the configuration file"),
		)
		return profile.NewExtractor(nil, logger, cfg.MaxLogLength), nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	logger.Info("gemini generator ready", zap.String("model", generator.Model()))

	return profile.NewExtractor(generator, logger, cfg.MaxLogLength), nil
}

// newOrchestrator builds the France Travail search pipeline. Missing
// credentials are tolerated: searches then come back empty.
func newOrchestrator(cfg *FranceTravailConfig, logger *zap.Logger) *search.Orchestrator {
	clientID, err := secrets.Load(secrets.Source{
		Name:  "france travail client id",
		Value: cfg.ClientID,
		File:  cfg.ClientIDFile,
		Env:   "FT_CLIENT_ID",
	})
	if err != nil {
		logger.Warn("france travail client id not found, searches will return no offers",
			zap.Error(err),
			zap.String("hint", "set FT_CLIENT_ID or france-travail.client-id-file in the configuration file"),
		)
	}

	clientSecret, err := secrets.Load(secrets.Source{
		Name:  "france travail client secret",
		Value: cfg.ClientSecret,
		File:  cfg.ClientSecretFile,
		Env:   "FT_CLIENT_SECRET",
	})
	if err != nil {
		logger.Warn("france travail client secret not found, searches will return no offers",
			zap.Error(err),
		)
	}

	client := francetravail.New(logger, clientID, clientSecret)
	if cfg.AuthURL != "" {
		client.AuthURL = cfg.AuthURL
	}
	if cfg.APIURL != "" {
		client.APIURL = cfg.APIURL
	}

	return search.New(client, logger)
}
