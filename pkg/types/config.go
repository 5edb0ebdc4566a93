// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"runtime"
	"strings"
)

// LinePolicy selects how a corpus line with fewer than three fields is
// handled.
type LinePolicy string

const (
	// LineSkip drops the line and logs a warning.
	LineSkip LinePolicy = "skip"
	// LineFail rejects the whole document.
	LineFail LinePolicy = "fail"
)

// Defaults applied by ExtractionConfig.WithDefaults.
const (
	DefaultOutputFile     = "output.txt"
	DefaultPunctuationTag = "y"
	DefaultWindowRadius   = 7
	DefaultSentinelCount  = 5
)

// ExtractionConfig holds the settings for one concordance run. It is built
// once, before any document is read, and shared read-only by every worker.
type ExtractionConfig struct {
	// InputDir is the directory holding the vertical .txt corpus files.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir is the directory the concordance file is written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// OutputFile is the concordance file name inside OutputDir (default "output.txt").
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`

	// ShellNouns lists the target nouns in output order.
	ShellNouns []string `json:"shell_nouns" yaml:"shell_nouns" mapstructure:"shell_nouns"`

	// Workers bounds the number of documents processed at once (default: CPU count).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// LinePolicy selects skip or fail for malformed lines (default skip).
	LinePolicy LinePolicy `json:"line_policy" yaml:"line_policy" mapstructure:"line_policy"`

	// PunctuationTag is the tag that disqualifies a window when it appears on
	// the window's third token (default "y"). Empty disables the check.
	PunctuationTag string `json:"punctuation_tag" yaml:"punctuation_tag" mapstructure:"punctuation_tag"`

	// WindowRadius is the number of tokens kept on each side of a shell noun (default 7).
	WindowRadius int `json:"window_radius" yaml:"window_radius" mapstructure:"window_radius"`

	// SentinelCount is the number of filler tokens placed after each window (default 5).
	SentinelCount int `json:"sentinel_count" yaml:"sentinel_count" mapstructure:"sentinel_count"`

	// DBPath, when set, is the SQLite database the matches are also written to.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`

	// ReportPath, when set, is the YAML run report destination.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty" mapstructure:"report_path"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
// PunctuationTag is left alone: an explicit empty value disables the filter,
// so callers that want the default must set it themselves.
func (c ExtractionConfig) WithDefaults() ExtractionConfig {
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LinePolicy == "" {
		c.LinePolicy = LineSkip
	}
	if c.WindowRadius <= 0 {
		c.WindowRadius = DefaultWindowRadius
	}
	if c.SentinelCount <= 0 {
		c.SentinelCount = DefaultSentinelCount
	}
	return c
}

// Validate checks the settings that must hold before any document is read.
func (c ExtractionConfig) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if len(c.ShellNouns) == 0 {
		return fmt.Errorf("at least one shell noun is required")
	}
	for i, n := range c.ShellNouns {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("shell noun %d is blank", i)
		}
		if strings.ContainsAny(n, " \t\n") {
			return fmt.Errorf("shell noun %q contains whitespace", n)
		}
	}
	switch c.LinePolicy {
	case LineSkip, LineFail, "":
	default:
		return fmt.Errorf("unknown line policy %q (want %q or %q)", c.LinePolicy, LineSkip, LineFail)
	}
	return nil
}
