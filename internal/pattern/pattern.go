// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern compiles a shell noun into the six part-of-speech sequences
// that mark a "verb + article + noun + that + subject + verb" construction,
// and finds those sequences in a token stream.
package pattern

import (
	"fmt"
	"strings"

	"github.com/pdiddy/shellnoun/pkg/types"
)

// Alternative names, in the order they are tried at each position.
const (
	AltPronoun = iota
	AltThere
	AltNoun
	AltNounNoun
	AltArtNoun
	AltDetNoun
)

var altNames = [...]string{"pronoun", "there", "noun", "noun-noun", "art-noun", "det-noun"}

// AlternativeName returns the short name of alternative i.
func AlternativeName(i int) string {
	if i < 0 || i >= len(altNames) {
		return fmt.Sprintf("alt%d", i)
	}
	return altNames[i]
}

// step tests a single token.
type step func(types.Token) bool

// Alternative is one fixed token sequence.
type Alternative struct {
	Name  string
	steps []step
}

// Len returns the number of tokens the alternative consumes.
func (a Alternative) Len() int { return len(a.steps) }

// matchAt reports whether the alternative matches stream starting at i.
func (a Alternative) matchAt(stream []types.Token, i int) bool {
	if i+len(a.steps) > len(stream) {
		return false
	}
	for k, s := range a.steps {
		if !s(stream[i+k]) {
			return false
		}
	}
	return true
}

// Pattern is the compiled matcher for one shell noun. It is immutable and
// safe for concurrent use.
type Pattern struct {
	noun string
	alts []Alternative
}

// Span is a half-open range [Start, End) of a token stream that satisfied
// Alternative.
type Span struct {
	Start       int
	End         int
	Alternative int
}

// Noun returns the shell noun the pattern was compiled for.
func (p *Pattern) Noun() string { return p.noun }

// Alternatives returns the compiled alternatives in trial order.
func (p *Pattern) Alternatives() []Alternative { return p.alts }

// Compile builds the pattern for shellNoun. An empty noun produces a pattern
// that never matches.
func Compile(shellNoun string) *Pattern {
	noun := nounStep(shellNoun)
	complements := [][]step{
		AltPronoun:  {tagPrefix("p")},
		AltThere:    {tagIs("ex")},
		AltNoun:     {tagPrefix("n")},
		AltNounNoun: {tagPrefix("n"), tagPrefix("n")},
		AltArtNoun:  {tagPrefix("a"), tagPrefix("n")},
		AltDetNoun:  {tagPrefix("d"), tagPrefix("n")},
	}

	p := &Pattern{noun: shellNoun, alts: make([]Alternative, 0, len(complements))}
	for i, comp := range complements {
		steps := []step{anyToken, anyToken, finiteVerb, tagPrefix("a"), noun, wordIs("that")}
		steps = append(steps, comp...)
		steps = append(steps, tagPrefix("v"), anyToken)
		p.alts = append(p.alts, Alternative{Name: altNames[i], steps: steps})
	}
	return p
}

// CompileAll compiles one pattern per noun, keeping the first occurrence of
// duplicates. A blank noun is a configuration error.
func CompileAll(nouns []string) ([]*Pattern, error) {
	seen := make(map[string]bool, len(nouns))
	patterns := make([]*Pattern, 0, len(nouns))
	for i, n := range nouns {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("compiling shell noun %d: blank noun", i)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		patterns = append(patterns, Compile(n))
	}
	return patterns, nil
}

// FindAll returns every non-overlapping match in stream, leftmost first. At
// each position the alternatives are tried in order and the first one that
// fits wins; scanning resumes after the matched span.
func (p *Pattern) FindAll(stream []types.Token) []Span {
	var spans []Span
	for i := 0; i < len(stream); {
		matched := false
		for ai, alt := range p.alts {
			if alt.matchAt(stream, i) {
				spans = append(spans, Span{Start: i, End: i + alt.Len(), Alternative: ai})
				i += alt.Len()
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return spans
}

func anyToken(types.Token) bool { return true }

// finiteVerb accepts a verb tag whose second character is not the base-form
// marker 'b'.
func finiteVerb(t types.Token) bool {
	return strings.HasPrefix(t.Tag, "v") && !strings.HasPrefix(t.Tag[1:], "b")
}

func tagPrefix(prefix string) step {
	return func(t types.Token) bool { return strings.HasPrefix(t.Tag, prefix) }
}

func tagIs(tag string) step {
	return func(t types.Token) bool { return t.Tag == tag }
}

func wordIs(word string) step {
	return func(t types.Token) bool { return t.Word == word }
}

// nounStep matches tokens whose word starts with noun, so "fact" also covers
// "facts".
func nounStep(noun string) step {
	if noun == "" {
		return func(types.Token) bool { return false }
	}
	return func(t types.Token) bool { return strings.HasPrefix(t.Word, noun) }
}
