package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"product_copy_studio/config"
	"product_copy_studio/generator"
	"product_copy_studio/logging"
)

var (
	configPath string
	logMode    string
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Product copy studio: form backend and streamed multilingual copy generation",
	Long: `Serves the product copy form API and streams generated descriptions,
technical specifications and marketing highlights per target language.

The default provider is the local simulator; set generator.provider to
"openai" or "deepseek" in the config file to call a real model.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (.json, .yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "log mode: dev or prod (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(languagesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the logger and generator every command needs.
func bootstrap() (config.Config, *logging.Logger, generator.Generator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if logMode != "" {
		cfg.LogMode = logMode
	}
	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	settings, err := generatorSettings(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	gen, err := generator.New(settings)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger.Info("generator ready", "provider", settings.Provider, "model", settings.Model, "api_key", settings.APIKey)
	return cfg, logger, gen, nil
}

func generatorSettings(cfg config.Config) (generator.Settings, error) {
	d := generator.DefaultPacing
	word, line, highlight, err := cfg.Pacing.Durations(d.Word, d.Line, d.Highlight)
	if err != nil {
		return generator.Settings{}, err
	}
	return generator.Settings{
		Provider: cfg.Generator.Provider,
		Model:    cfg.Generator.Model,
		APIKey:   cfg.Generator.APIKey,
		BaseURL:  cfg.Generator.BaseURL,
		Pacing:   generator.Pacing{Word: word, Line: line, Highlight: highlight},
	}, nil
}
