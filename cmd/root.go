package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/alphadata/cvmatch/internal/hiring"
	"github.com/alphadata/cvmatch/internal/logger"
	"github.com/alphadata/cvmatch/internal/settings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "cvmatch"
)

type Config struct {
	APIBaseURL string        `mapstructure:"api-base-url"`
	UserAgent  string        `mapstructure:"user-agent"`
	Match      *MatchConfig  `mapstructure:"match"`
	Upload     *UploadConfig `mapstructure:"upload"`
}

type MatchConfig struct {
	Model string `mapstructure:"model"`
	// ProgressIntervalMS overrides the simulated progress tick period.
	ProgressIntervalMS int `mapstructure:"progress-interval-ms"`
}

type UploadConfig struct {
	// DisplayDelaySeconds is how long upload results stay on screen before
	// the selection resets.
	DisplayDelaySeconds int `mapstructure:"display-delay-seconds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cvmatch is a cli for uploading CVs and job descriptions and matching them via the AI hiring backend",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api-base-url", "CVMATCH_API_BASE_URL"); err != nil {
		log.Fatalf("binding CVMATCH_API_BASE_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cvmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-base-url", "", "base URL of the hiring backend API")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-base-url", rootCmd.PersistentFlags().Lookup("api-base-url"))
}

func initConfig() {
	// A .env in the working directory may carry CVMATCH_* variables. A
	// missing file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file itself is optional; flags and env cover everything.
	// An explicitly requested or malformed file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			log.Fatal(err)
		}
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
	if config.APIBaseURL == "" {
		config.APIBaseURL = viper.GetString("api-base-url")
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}
	if config.Match.Model == "" {
		config.Match.Model = defaultModel
	}
	if config.Upload == nil {
		config.Upload = &UploadConfig{}
	}
	if config.Upload.DisplayDelaySeconds <= 0 {
		config.Upload.DisplayDelaySeconds = 5
	}

	return config, nil
}

// bootstrap wires the logger, config and API client shared by all commands.
func bootstrap(ctx context.Context) (*zap.Logger, *Config, *hiring.Client) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client := hiring.New(ctx, logger, config.APIBaseURL)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return logger, config, client
}

// loadSettings returns the persisted display preferences, falling back to
// defaults when the settings file is unreadable.
func loadSettings(logger *zap.Logger) *settings.Settings {
	prefs, err := settings.Load("")
	if err != nil {
		logger.Warn("loading settings, using defaults", zap.Error(err))
		return &settings.Settings{Theme: settings.ThemeDark}
	}
	return prefs
}
