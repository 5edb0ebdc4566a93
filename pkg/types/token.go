// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Token is one line of a vertically annotated corpus: the surface word, its
// lemma, and its part-of-speech tag.
type Token struct {
	// Word is the surface form as it appears in the text (e.g. "confirms").
	Word string `json:"word" yaml:"word"`

	// Lemma is the dictionary form (e.g. "confirm").
	Lemma string `json:"lemma" yaml:"lemma"`

	// Tag is the part-of-speech tag (e.g. "vvz").
	Tag string `json:"tag" yaml:"tag"`
}

// Sentinel is the filler token appended after every context window so that a
// match cannot run from one window into the next.
var Sentinel = Token{Word: "0", Lemma: "0", Tag: "0"}

// String renders the token in horizontal markup: word_lemma_tag.
func (t Token) String() string {
	return t.Word + "_" + t.Lemma + "_" + t.Tag
}

// IsSentinel reports whether t is the window boundary filler.
func (t Token) IsSentinel() bool {
	return t == Sentinel
}

// Document is the token sequence read from one corpus file.
type Document struct {
	// Name is the file name the tokens were read from.
	Name string `json:"name" yaml:"name"`

	// Index is the position of the file in discovery order. Results are
	// aggregated by this index, not by completion order.
	Index int `json:"index" yaml:"index"`

	// Tokens holds one entry per well-formed input line.
	Tokens []Token `json:"-" yaml:"-"`
}
