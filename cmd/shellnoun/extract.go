// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/shellnoun/internal/batch"
	"github.com/pdiddy/shellnoun/internal/corpus"
	"github.com/pdiddy/shellnoun/internal/kwic"
	"github.com/pdiddy/shellnoun/internal/pattern"
	"github.com/pdiddy/shellnoun/internal/store"
	"github.com/pdiddy/shellnoun/pkg/types"
)

// timestampLayout matches the start and completion lines users grep for.
const timestampLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract concordance lines for the configured shell nouns",
	Long: `Extract reads every .txt file directly inside the input directory, finds
each occurrence of a configured shell noun, and matches the surrounding
context against six grammatical patterns. All matches are written, one per
line, to the output file, which is replaced on every run.

A document that cannot be read or parsed is reported and skipped; the
matches of the remaining documents are still written.`,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("input-dir", "", "directory of vertical .txt corpus files")
	f.String("output-dir", "", "directory for the concordance file")
	f.String("output-file", types.DefaultOutputFile, "concordance file name inside the output directory")
	f.StringSlice("noun", nil, "shell noun to search for (repeatable; overrides shell_nouns in the config)")
	f.Int("workers", 0, "documents processed in parallel (default: number of CPUs)")
	f.String("line-policy", string(types.LineSkip), "malformed line handling: skip or fail")
	f.String("punctuation-tag", types.DefaultPunctuationTag, "tag that disqualifies a window on its third token (empty disables)")
	f.String("db", "", "also write the matches to this SQLite database")
	f.String("report", "", "write a YAML run report to this path")
	f.Bool("quiet", false, "suppress the progress bar")

	bindFlags(extractCmd, map[string]string{
		"input_dir":       "input-dir",
		"output_dir":      "output-dir",
		"output_file":     "output-file",
		"shell_nouns":     "noun",
		"workers":         "workers",
		"line_policy":     "line-policy",
		"punctuation_tag": "punctuation-tag",
		"db_path":         "db",
		"report_path":     "report",
	})

	rootCmd.AddCommand(extractCmd)
}

// bindFlags ties config keys to command flags so that a flag given on the
// command line overrides the config file and environment.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// extractionConfig assembles the run configuration from viper.
func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		InputDir:       viper.GetString("input_dir"),
		OutputDir:      viper.GetString("output_dir"),
		OutputFile:     viper.GetString("output_file"),
		ShellNouns:     viper.GetStringSlice("shell_nouns"),
		Workers:        viper.GetInt("workers"),
		LinePolicy:     types.LinePolicy(viper.GetString("line_policy")),
		PunctuationTag: viper.GetString("punctuation_tag"),
		WindowRadius:   viper.GetInt("window_radius"),
		SentinelCount:  viper.GetInt("sentinel_count"),
		DBPath:         viper.GetString("db_path"),
		ReportPath:     viper.GetString("report_path"),
	}.WithDefaults()
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	patterns, err := pattern.CompileAll(cfg.ShellNouns)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	extractor := kwic.New(patterns, kwic.OptionsFromConfig(cfg))

	paths, err := corpus.Discover(cfg.InputDir)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	return extractRun(cmd, cfg, extractor, paths, quiet, os.Stdout)
}

func extractRun(cmd *cobra.Command, cfg types.ExtractionConfig, extractor *kwic.Extractor, paths []string, quiet bool, w io.Writer) error {
	fmt.Fprintln(w, time.Now().Format(timestampLayout))
	fmt.Fprintf(w, "Starting... (%d documents, %d shell nouns, %d workers)\n", len(paths), len(cfg.ShellNouns), cfg.Workers)

	opts := batch.Options{Logger: logger}
	if !quiet && len(paths) > 0 {
		opts.Progress = newBarProgress(os.Stderr, len(paths))
	}

	result, err := batch.Run(cmd.Context(), cfg, extractor, paths, opts)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.OutputDir, cfg.OutputFile)
	if err := batch.WriteOutput(outPath, result.Lines()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %d lines to %s\n", len(result.Matches), outPath)

	if cfg.DBPath != "" {
		if err := writeStore(cmd, cfg.DBPath, result.Matches); err != nil {
			return err
		}
		fmt.Fprintf(w, "Stored matches in %s\n", cfg.DBPath)
	}

	if cfg.ReportPath != "" {
		if err := batch.WriteReport(cfg.ReportPath, result, cfg.ShellNouns); err != nil {
			logger.Warn("report not written", zap.String("path", cfg.ReportPath), zap.Error(err))
		}
	}

	batch.PrintSummary(w, result)
	fmt.Fprintln(w, time.Now().Format(timestampLayout))
	fmt.Fprintln(w, "Done!")

	if result.Summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed", result.Summary.Failed)
	}
	return nil
}

func writeStore(cmd *cobra.Command, path string, matches []types.Match) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Replace(cmd.Context(), matches)
}
