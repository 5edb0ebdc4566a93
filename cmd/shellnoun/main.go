// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the shellnoun CLI, which extracts
// shell-noun concordance lines from vertically tagged COCA/COHA corpora.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and shared by all subcommands.
var logger = zap.NewNop()

// rootCmd is the base command for the shellnoun CLI.
var rootCmd = &cobra.Command{
	Use:   "shellnoun",
	Short: "Extract shell-noun concordances from tagged corpora",
	Long: `shellnoun scans vertically annotated corpus files (one "word lemma tag"
token per line, as distributed with COCA and COHA) for shell nouns such as
"fact" or "idea" used in the construction

    verb + article + shell noun + that + subject + verb

and writes every matching span, stripped of its annotation, to a
concordance file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./shellnoun.yaml or ~/.config/shellnoun/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-document details")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("shellnoun")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "shellnoun"))
		}
	}

	viper.SetEnvPrefix("SHELLNOUN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
