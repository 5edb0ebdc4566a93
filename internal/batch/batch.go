// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs concordance extraction over every document of a corpus
// directory on a bounded worker pool and aggregates the results in discovery
// order.
package batch

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/shellnoun/internal/corpus"
	"github.com/pdiddy/shellnoun/internal/kwic"
	"github.com/pdiddy/shellnoun/pkg/types"
)

// Progress receives one call per finished document, successful or not.
// Calls are serialized by Run.
type Progress interface {
	DocumentDone(name string, matches int, err error)
}

// Options carries the collaborators of a run.
type Options struct {
	Logger   *zap.Logger
	Progress Progress
}

// Failure records a document that could not be processed.
type Failure struct {
	Document string
	Err      error
}

// Summary holds counts from a batch run.
type Summary struct {
	Documents int
	Succeeded int
	Failed    int
	Matches   int
	Started   time.Time
	Finished  time.Time
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// HasFailures reports whether any document failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Result is the aggregated outcome of a run.
type Result struct {
	// Matches holds every match, documents in discovery order, then nouns in
	// configured order, then stream order.
	Matches  []types.Match
	Failures []Failure
	Summary  Summary
}

// NounCounts returns the number of matches per shell noun.
func (r Result) NounCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Matches {
		counts[m.Noun]++
	}
	return counts
}

// Lines returns the match texts in output order.
func (r Result) Lines() []string {
	lines := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		lines[i] = m.Text
	}
	return lines
}

// Run parses and extracts each document in paths with at most cfg.Workers
// documents in flight. A document that fails is recorded in the result and
// does not stop the others. Run returns an error only when ctx is cancelled.
func Run(ctx context.Context, cfg types.ExtractionConfig, ex *kwic.Extractor, paths []string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	started := time.Now()
	perDoc := make([][]types.Match, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var progressMu sync.Mutex
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches, err := processDocument(cfg, ex, path, i, logger)
			perDoc[i] = matches
			errs[i] = err
			if opts.Progress != nil {
				progressMu.Lock()
				opts.Progress.DocumentDone(path, len(matches), err)
				progressMu.Unlock()
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		return Result{}, fmt.Errorf("batch cancelled: %w", waitErr)
	}

	result := aggregate(paths, perDoc, errs)
	result.Summary.Started = started
	result.Summary.Finished = time.Now()
	for _, f := range result.Failures {
		logger.Error("document failed", zap.String("file", f.Document), zap.Error(f.Err))
	}
	return result, nil
}

// processDocument handles one file. The token slice goes out of scope as soon
// as the matches are built.
func processDocument(cfg types.ExtractionConfig, ex *kwic.Extractor, path string, index int, logger *zap.Logger) ([]types.Match, error) {
	doc, err := corpus.ParseFile(path, cfg.LinePolicy, logger)
	if err != nil {
		return nil, err
	}
	doc.Index = index
	matches := ex.Matches(doc)
	logger.Debug("document done",
		zap.String("file", doc.Name),
		zap.Int("tokens", len(doc.Tokens)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// aggregate flattens the per-document match lists one level, in discovery
// order, and collects failures.
func aggregate(paths []string, perDoc [][]types.Match, errs []error) Result {
	var result Result
	result.Summary.Documents = len(paths)
	for i, path := range paths {
		if errs[i] != nil {
			result.Failures = append(result.Failures, Failure{Document: path, Err: errs[i]})
			result.Summary.Failed++
			continue
		}
		result.Summary.Succeeded++
		result.Matches = append(result.Matches, perDoc[i]...)
	}
	result.Summary.Matches = len(result.Matches)
	return result
}

// PrintSummary writes a human-readable run summary to w.
func PrintSummary(w io.Writer, r Result) {
	for _, f := range r.Failures {
		fmt.Fprintf(w, "failed  %s: %v\n", f.Document, f.Err)
	}
	fmt.Fprintf(w, "\ndocuments: %d, succeeded: %d, failed: %d, matches: %d\n",
		r.Summary.Documents, r.Summary.Succeeded, r.Summary.Failed, r.Summary.Matches)
}
