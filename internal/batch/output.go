// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// WriteOutput writes one match per line to path, replacing any previous
// file. The parent directory is created when missing.
func WriteOutput(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", path, err)
	}
	return nil
}

// Report is the YAML run report.
type Report struct {
	Started   string          `yaml:"started"`
	Finished  string          `yaml:"finished"`
	Documents int             `yaml:"documents"`
	Succeeded int             `yaml:"succeeded"`
	Failed    int             `yaml:"failed"`
	Matches   int             `yaml:"matches"`
	Nouns     []NounCount     `yaml:"nouns"`
	Failures  []ReportFailure `yaml:"failures,omitempty"`
}

// NounCount is the number of matches for one shell noun.
type NounCount struct {
	Noun    string `yaml:"noun"`
	Matches int    `yaml:"matches"`
}

// ReportFailure names a failed document and its cause.
type ReportFailure struct {
	Document string `yaml:"document"`
	Error    string `yaml:"error"`
}

// NewReport builds the report for r. Nouns are listed in the given order;
// nouns without matches are included with a zero count.
func NewReport(r Result, nouns []string) Report {
	counts := r.NounCounts()
	rep := Report{
		Started:   r.Summary.Started.UTC().Format(time.RFC3339),
		Finished:  r.Summary.Finished.UTC().Format(time.RFC3339),
		Documents: r.Summary.Documents,
		Succeeded: r.Summary.Succeeded,
		Failed:    r.Summary.Failed,
		Matches:   r.Summary.Matches,
	}

	listed := make(map[string]bool, len(nouns))
	for _, n := range nouns {
		if listed[n] {
			continue
		}
		listed[n] = true
		rep.Nouns = append(rep.Nouns, NounCount{Noun: n, Matches: counts[n]})
	}
	var extra []string
	for n := range counts {
		if !listed[n] {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	for _, n := range extra {
		rep.Nouns = append(rep.Nouns, NounCount{Noun: n, Matches: counts[n]})
	}

	for _, f := range r.Failures {
		rep.Failures = append(rep.Failures, ReportFailure{Document: f.Document, Error: f.Err.Error()})
	}
	return rep
}

// WriteReport marshals the run report for r to a YAML file at path.
func WriteReport(path string, r Result, nouns []string) error {
	data, err := yaml.Marshal(NewReport(r, nouns))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
