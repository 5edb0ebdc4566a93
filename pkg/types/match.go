// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Match is one concordance line together with where it came from.
type Match struct {
	// Document is the name of the corpus file the match was found in.
	Document string `json:"document" yaml:"document"`

	// Noun is the configured shell noun whose pattern produced the match.
	Noun string `json:"noun" yaml:"noun"`

	// Alternative is the index of the grammatical alternative that matched
	// (0 pronoun, 1 there, 2 noun, 3 noun-noun, 4 art-noun, 5 det-noun).
	Alternative int `json:"alternative" yaml:"alternative"`

	// Text is the matched span with lemma and tag annotation removed.
	Text string `json:"text" yaml:"text"`
}
