// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the answer-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var logger zerolog.Logger

// rootCmd is the base command for the answer-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "answer-engine",
	Short: "Conversational assistant over public web APIs and a local model",
	Long: `answer-engine answers questions by fanning a query out to public web APIs
(Wikipedia, arXiv, PubMed, weather, dictionaries, and a dozen more), merging
whatever came back into a single document, and optionally phrasing an answer
through a locally hosted Ollama model.

Each surface is a subcommand: ask for a one-shot answer, chat for an
interactive session, search for the raw aggregated document, and classify to
inspect how a query is routed.`,
}

func init() {
	// Assigned here rather than in the composite literal above to avoid an
	// initialization cycle: the closure references rootCmd.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./answer-engine.yaml or ~/.config/answer-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("answer-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "answer-engine"))
		}
	}

	viper.SetEnvPrefix("ANSWER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges the built-in defaults with whatever viper picked up
// from the config file and environment.
func loadConfig() types.AssistantConfig {
	cfg := types.DefaultConfig()

	viper.SetDefault("sources.timeout", cfg.Sources.Timeout)
	viper.SetDefault("sources.user_agent", cfg.Sources.UserAgent)
	viper.SetDefault("sources.max_results", cfg.Sources.MaxResults)
	viper.SetDefault("aggregate.deadline", cfg.Aggregate.Deadline)
	viper.SetDefault("generation.endpoint", cfg.Generation.Endpoint)
	viper.SetDefault("generation.model", cfg.Generation.Model)
	viper.SetDefault("generation.persona", cfg.Generation.Persona)
	viper.SetDefault("generation.temperature", cfg.Generation.Temperature)
	viper.SetDefault("generation.max_tokens", cfg.Generation.MaxTokens)
	viper.SetDefault("generation.history_window", cfg.Generation.HistoryWindow)

	cfg.Sources.Timeout = viper.GetDuration("sources.timeout")
	cfg.Sources.UserAgent = viper.GetString("sources.user_agent")
	cfg.Sources.MaxResults = viper.GetInt("sources.max_results")
	cfg.Aggregate.Deadline = viper.GetDuration("aggregate.deadline")
	cfg.Generation.Endpoint = viper.GetString("generation.endpoint")
	cfg.Generation.Model = viper.GetString("generation.model")
	cfg.Generation.Persona = viper.GetString("generation.persona")
	cfg.Generation.Temperature = viper.GetFloat64("generation.temperature")
	cfg.Generation.MaxTokens = viper.GetInt("generation.max_tokens")
	cfg.Generation.HistoryWindow = viper.GetInt("generation.history_window")

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
