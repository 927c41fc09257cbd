// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-hub CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-hub/internal/orchestrate"
	"github.com/pdiddy/research-hub/internal/secrets"
	"github.com/pdiddy/research-hub/internal/source"
	"github.com/pdiddy/research-hub/internal/store"
	"github.com/pdiddy/research-hub/internal/synthesis"
	"github.com/pdiddy/research-hub/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the research-hub CLI.
var rootCmd = &cobra.Command{
	Use:   "research-hub",
	Short: "Retrieve, merge and synthesize research material from external sources",
	Long: `research-hub retrieves research material (papers, articles, news) from
several independent external sources, merges and deduplicates the results,
persists them as documents, and synthesizes summaries and knowledge graphs
from document sets.

Fetch and synthesis runs are asynchronous processes: starting one returns a
process identifier immediately, and the outcome is observed by polling its
status. Use fetch, synthesize, status and docs as subcommands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-hub.yaml or ~/.config/research-hub/config.yaml)")
	rootCmd.PersistentFlags().String("owner", "", "identity of the requesting user")
	rootCmd.PersistentFlags().String("data-dir", "", "base directory for the document store (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-hub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-hub"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_HUB")
	viper.AutomaticEnv()

	viper.SetDefault("sources.timeout", "15s")
	viper.SetDefault("sources.user_agent", "research-hub/0.1")
	viper.SetDefault("sources.max_results", 10)
	viper.SetDefault("synthesis.model", "gpt-4o-mini")
	viper.SetDefault("synthesis.max_retries", 3)
	viper.SetDefault("synthesis.corpus_limit", 10)
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("store.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// hubConfig assembles the stage configurations from viper and secrets.
func hubConfig(cmd *cobra.Command) types.HubConfig {
	cfg := types.HubConfig{
		Sources: types.SourcesConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("sources.timeout"),
				UserAgent: viper.GetString("sources.user_agent"),
			},
			MaxResults:     viper.GetInt("sources.max_results"),
			GNewsAPIKey:    secretDefault("gnews-api-key", viper.GetString("sources.gnews_api_key")),
			CurrentsAPIKey: secretDefault("currents-api-key", viper.GetString("sources.currents_api_key")),
		},
		Synthesis: types.SynthesisConfig{
			Model:       viper.GetString("synthesis.model"),
			APIKey:      secretDefault("openai-api-key", viper.GetString("synthesis.api_key")),
			MaxRetries:  viper.GetInt("synthesis.max_retries"),
			CorpusLimit: viper.GetInt("synthesis.corpus_limit"),
		},
		Store: types.StoreConfig{
			DataDir:    viper.GetString("store.data_dir"),
			MaxResults: viper.GetInt("store.max_results"),
		},
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if cfg.Sources.Timeout <= 0 {
		cfg.Sources.Timeout = 15 * time.Second
	}
	return cfg
}

// openStore opens the SQLite store for the configured data directory.
func openStore(cfg types.HubConfig) (*store.Store, error) {
	return store.NewStore(cfg.Store)
}

// buildOrchestrator wires the store, source registry and synthesis backend
// into an orchestrator. The caller owns closing the returned store.
func buildOrchestrator(cmd *cobra.Command) (*orchestrate.Orchestrator, *store.Store, error) {
	cfg := hubConfig(cmd)

	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := &http.Client{Timeout: cfg.Sources.Timeout}
	registry := source.NewRegistry(client, cfg.Sources)
	backend := synthesis.NewOpenAIBackend(cfg.Synthesis)

	orch := orchestrate.New(st, st, registry, backend, cfg.Synthesis, os.Stderr)
	return orch, st, nil
}

// requireOwner reads the --owner flag, rejecting an empty value.
func requireOwner(cmd *cobra.Command) (string, error) {
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		return "", fmt.Errorf("--owner is required")
	}
	return owner, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
