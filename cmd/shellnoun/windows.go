// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/shellnoun/internal/corpus"
	"github.com/pdiddy/shellnoun/internal/kwic"
	"github.com/pdiddy/shellnoun/internal/pattern"
)

var windowsCmd = &cobra.Command{
	Use:   "windows FILE",
	Short: "Print the horizontal context windows of one corpus file",
	Long: `Windows shows the text the patterns are matched against: every context
window around a shell noun in FILE, rendered as word_lemma_tag tokens and
followed by the 0_0_0 boundary filler. Use it to see why a sentence did or
did not match.`,
	Args: cobra.ExactArgs(1),
	RunE: runWindows,
}

func init() {
	windowsCmd.Flags().StringSlice("noun", nil, "shell noun (repeatable; default: shell_nouns from the config)")
	rootCmd.AddCommand(windowsCmd)
}

func runWindows(cmd *cobra.Command, args []string) error {
	nouns, _ := cmd.Flags().GetStringSlice("noun")
	if len(nouns) == 0 {
		nouns = viper.GetStringSlice("shell_nouns")
	}
	if len(nouns) == 0 {
		return fmt.Errorf("no shell nouns: pass --noun or set shell_nouns in the config")
	}

	patterns, err := pattern.CompileAll(nouns)
	if err != nil {
		return err
	}
	cfg := extractionConfig()
	extractor := kwic.New(patterns, kwic.OptionsFromConfig(cfg))

	doc, err := corpus.ParseFile(args[0], cfg.LinePolicy, logger)
	if err != nil {
		return err
	}

	for _, w := range extractor.Windows(doc.Tokens) {
		fmt.Fprintln(os.Stdout, kwic.Horizontal(w))
	}
	return nil
}
