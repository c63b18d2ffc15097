package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "easyjobfind"

	defaultListenAddr = ":8000"
)

type Config struct {
	Listen        string               `mapstructure:"listen"`
	Gemini        *GeminiConfig        `mapstructure:"gemini"`
	FranceTravail *FranceTravailConfig `mapstructure:"france-travail"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type FranceTravailConfig struct {
	ClientID         string `mapstructure:"client-id"`
	ClientIDFile     string `mapstructure:"client-id-file"`
	ClientSecret     string `mapstructure:"client-secret"`
	ClientSecretFile string `mapstructure:"client-secret-file"`
	AuthURL          string `mapstructure:"auth-url"`
	APIURL           string `mapstructure:"api-url"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "easyjobfind analyses resumes and finds matching France Travail job offers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is easyjobfind.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets may come from a local .env file in development. Absence is
	// fine, the environment itself is consulted later.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional. Everything has a default or an
	// environment fallback, but a present-yet-broken file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	if config.FranceTravail == nil {
		config.FranceTravail = &FranceTravailConfig{}
	}

	return config, nil
}
