// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kwic carves context windows around shell nouns in a tagged token
// sequence, runs the compiled patterns over them, and returns the matched
// spans as plain words.
package kwic

import (
	"strings"

	"github.com/pdiddy/shellnoun/internal/pattern"
	"github.com/pdiddy/shellnoun/pkg/types"
)

// Options controls window carving. Zero values fall back to the defaults in
// pkg/types, except PunctuationTag, where empty disables the third-token check.
type Options struct {
	WindowRadius   int
	SentinelCount  int
	PunctuationTag string
}

// DefaultOptions returns the window settings used for COCA/COHA corpora.
func DefaultOptions() Options {
	return Options{
		WindowRadius:   types.DefaultWindowRadius,
		SentinelCount:  types.DefaultSentinelCount,
		PunctuationTag: types.DefaultPunctuationTag,
	}
}

// OptionsFromConfig picks the window settings out of a run configuration.
func OptionsFromConfig(cfg types.ExtractionConfig) Options {
	return Options{
		WindowRadius:   cfg.WindowRadius,
		SentinelCount:  cfg.SentinelCount,
		PunctuationTag: cfg.PunctuationTag,
	}
}

// Extractor holds the compiled patterns and the shell-noun set for a run.
// It has no mutable state and may be shared across goroutines.
type Extractor struct {
	patterns []*pattern.Pattern
	nouns    map[string]bool
	opts     Options
}

// New builds an Extractor. The shell-noun set is derived from the patterns.
func New(patterns []*pattern.Pattern, opts Options) *Extractor {
	if opts.WindowRadius <= 0 {
		opts.WindowRadius = types.DefaultWindowRadius
	}
	if opts.SentinelCount <= 0 {
		opts.SentinelCount = types.DefaultSentinelCount
	}
	nouns := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		nouns[p.Noun()] = true
	}
	return &Extractor{patterns: patterns, nouns: nouns, opts: opts}
}

// Extract returns the cleaned matches in doc for the given patterns, looking
// for windows around any word in shellNouns. It never returns nil.
func Extract(doc []types.Token, patterns []*pattern.Pattern, shellNouns map[string]bool) []string {
	e := &Extractor{patterns: patterns, nouns: shellNouns, opts: DefaultOptions()}
	matches := e.Matches(types.Document{Tokens: doc})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Text)
	}
	return out
}

// Matches extracts every match in doc, grouped by pattern in configured
// order and, within a pattern, in stream order.
func (e *Extractor) Matches(doc types.Document) []types.Match {
	stream := e.Stream(doc.Tokens)
	if len(stream) == 0 {
		return nil
	}

	var matches []types.Match
	for _, p := range e.patterns {
		for _, sp := range p.FindAll(stream) {
			matches = append(matches, types.Match{
				Document:    doc.Name,
				Noun:        p.Noun(),
				Alternative: sp.Alternative,
				Text:        Clean(stream[sp.Start:sp.End]),
			})
		}
	}
	return matches
}

// Stream builds the linear form that patterns run over: each surviving
// window followed by the sentinel filler, windows in occurrence order.
func (e *Extractor) Stream(doc []types.Token) []types.Token {
	windows := e.Windows(doc)
	if len(windows) == 0 {
		return nil
	}
	size := 0
	for _, w := range windows {
		size += len(w) + e.opts.SentinelCount
	}
	stream := make([]types.Token, 0, size)
	for _, w := range windows {
		stream = append(stream, w...)
		for i := 0; i < e.opts.SentinelCount; i++ {
			stream = append(stream, types.Sentinel)
		}
	}
	return stream
}

// Windows returns the context window around every shell-noun occurrence,
// minus windows rejected by the punctuation check. Windows are sub-slices of
// doc and overlap when occurrences are close together.
func (e *Extractor) Windows(doc []types.Token) [][]types.Token {
	var windows [][]types.Token
	for _, b := range Bounds(doc, e.nouns, e.opts.WindowRadius) {
		w := doc[b[0]:b[1]]
		if e.punctuationAtThird(w) {
			continue
		}
		windows = append(windows, w)
	}
	return windows
}

// punctuationAtThird reports whether the window's third token carries the
// punctuation tag.
// TODO: confirm with the corpus maintainers whether this rule is intended;
// it is kept literally and can be disabled with an empty PunctuationTag.
func (e *Extractor) punctuationAtThird(w []types.Token) bool {
	return e.opts.PunctuationTag != "" && len(w) > 2 && w[2].Tag == e.opts.PunctuationTag
}

// Bounds returns the half-open window [max(0,i-radius), min(len,i+radius+1))
// for every index i whose word is in nouns, in document order.
func Bounds(doc []types.Token, nouns map[string]bool, radius int) [][2]int {
	var bounds [][2]int
	for i, t := range doc {
		if !nouns[t.Word] {
			continue
		}
		bounds = append(bounds, [2]int{max(0, i-radius), min(len(doc), i+radius+1)})
	}
	return bounds
}

// Horizontal renders a stream as space-separated word_lemma_tag text.
func Horizontal(stream []types.Token) string {
	var b strings.Builder
	for i, t := range stream {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Clean reduces a matched span to its bare words, dropping sentinel filler.
func Clean(span []types.Token) string {
	words := make([]string, 0, len(span))
	for _, t := range span {
		if t.IsSentinel() {
			continue
		}
		words = append(words, t.Word)
	}
	return strings.Join(words, " ")
}
