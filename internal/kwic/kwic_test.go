// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kwic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/shellnoun/internal/pattern"
	"github.com/pdiddy/shellnoun/pkg/types"
)

// --- test helpers ---

func toks(t *testing.T, s string) []types.Token {
	t.Helper()
	var out []types.Token
	for _, f := range strings.Fields(s) {
		parts := strings.Split(f, "_")
		require.Len(t, parts, 3, "bad token %q", f)
		out = append(out, types.Token{Word: parts[0], Lemma: parts[1], Tag: parts[2]})
	}
	return out
}

func nounSet(nouns ...string) map[string]bool {
	set := make(map[string]bool, len(nouns))
	for _, n := range nouns {
		set[n] = true
	}
	return set
}

func compile(t *testing.T, nouns ...string) []*pattern.Pattern {
	t.Helper()
	ps, err := pattern.CompileAll(nouns)
	require.NoError(t, err)
	return ps
}

// --- Bounds ---

func TestBounds(t *testing.T) {
	doc := make([]types.Token, 20)
	for i := range doc {
		doc[i] = types.Token{Word: "w", Lemma: "w", Tag: "nn1"}
	}
	doc[0].Word = "fact"
	doc[10].Word = "fact"
	doc[19].Word = "fact"

	got := Bounds(doc, nounSet("fact"), 7)
	assert.Equal(t, [][2]int{{0, 8}, {3, 18}, {12, 20}}, got)
}

func TestBoundsShortDocument(t *testing.T) {
	doc := toks(t, "fact_fact_nn1")
	assert.Equal(t, [][2]int{{0, 1}}, Bounds(doc, nounSet("fact"), 7))
}

// --- Extract ---

func TestExtractNoShellNouns(t *testing.T) {
	doc := toks(t, "we_we_ppis2 now_now_rt confirms_confirm_vvz the_the_at rumour_rumour_nn1 that_that_cst he_he_pps1 might_might_vm leave_leave_vvi")
	got := Extract(doc, compile(t, "fact"), nounSet("fact"))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractEmptyDocument(t *testing.T) {
	got := Extract(nil, compile(t, "fact"), nounSet("fact"))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractRoundTrip(t *testing.T) {
	doc := toks(t, "we_we_ppis2 now_now_rt confirms_confirm_v the_the_at possibility_possibility_n that_that_cst he_he_pp might_might_vm leave_leave_vi soon_soon_av")
	got := Extract(doc, compile(t, "possibility"), nounSet("possibility"))
	assert.Equal(t, []string{"we now confirms the possibility that he might leave"}, got)
}

func TestExtractNounAtFirstToken(t *testing.T) {
	doc := toks(t, "fact_fact_nn1 that_that_cst he_he_pps1 might_might_vm leave_leave_vvi")
	assert.NotPanics(t, func() {
		got := Extract(doc, compile(t, "fact"), nounSet("fact"))
		assert.Empty(t, got)
	})
}

func TestExtractNounAtLastToken(t *testing.T) {
	doc := toks(t, "we_we_ppis2 now_now_rt confirms_confirm_vvz the_the_at fact_fact_nn1")
	assert.NotPanics(t, func() {
		got := Extract(doc, compile(t, "fact"), nounSet("fact"))
		assert.Empty(t, got)
	})
}

func TestExtractPunctuationAtThirdToken(t *testing.T) {
	doc := toks(t, "p0_p0_xx p1_p1_xx p2_p2_xx p3_p3_xx ,_,_y we_we_ppis2 now_now_rt confirms_confirm_vvz the_the_at fact_fact_nn1 that_that_cst he_he_pps1 might_might_vm leave_leave_vvi soon_soon_rr")
	patterns := compile(t, "fact")

	dropping := New(patterns, DefaultOptions())
	assert.Empty(t, dropping.Matches(types.Document{Tokens: doc}))

	keeping := New(patterns, Options{PunctuationTag: ""})
	matches := keeping.Matches(types.Document{Tokens: doc})
	require.Len(t, matches, 1)
	assert.Equal(t, "we now confirms the fact that he might leave", matches[0].Text)
}

func TestSentinelsSeparateWindows(t *testing.T) {
	// The first window ends in "... confirms the facts" and the second starts
	// with "that he might leave", which would match if the windows touched.
	head := "fact_fact_nn1 w1_w1_xx w2_w2_xx w3_w3_xx w4_w4_xx confirms_confirm_vvz the_the_at facts_fact_nn2 "
	gap := strings.Repeat("g_g_xx ", 12)
	tail := "that_that_cst he_he_pps1 might_might_vm leave_leave_vvi x_x_xx y_y_xx z_z_xx fact_fact_nn1"
	doc := toks(t, head+gap+tail)
	patterns := compile(t, "fact")

	e := New(patterns, DefaultOptions())
	windows := e.Windows(doc)
	require.Len(t, windows, 2)

	var joined []types.Token
	for _, w := range windows {
		joined = append(joined, w...)
	}
	require.Len(t, patterns[0].FindAll(joined), 1, "windows without filler should produce a spanning match")

	assert.Empty(t, e.Matches(types.Document{Tokens: doc}))
}

func TestOverlappingWindowsAreNotDeduplicated(t *testing.T) {
	doc := toks(t, "p0_p0_xx p1_p1_xx p2_p2_xx p3_p3_xx p4_p4_xx we_we_ppis2 now_now_rt confirms_confirm_vvz the_the_at fact_fact_nn1 that_that_cst he_he_pps1 might_might_vm leave_leave_vvi fact_fact_nn1 today_today_rt ok_ok_rt")
	got := Extract(doc, compile(t, "fact"), nounSet("fact"))
	assert.Equal(t, []string{
		"we now confirms the fact that he might leave",
		"confirms the fact that he might leave",
	}, got)
}

func TestExtractOrdersByPatternThenPosition(t *testing.T) {
	doc := toks(t, strings.Join([]string{
		"a_a_xx b_b_xx raises_raise_vvz the_the_at idea_idea_nn1 that_that_cst we_we_ppis2 could_could_vm win_win_vvi",
		strings.Repeat("g_g_xx ", 10),
		"c_c_xx d_d_xx confirms_confirm_vvz the_the_at fact_fact_nn1 that_that_cst there_there_ex is_be_vbz hope_hope_nn1",
		strings.Repeat("g_g_xx ", 10),
		"e_e_xx f_f_xx states_state_vvz the_the_at fact_fact_nn1 that_that_cst she_she_pps1 was_be_vbdz right_right_jj",
	}, " "))

	e := New(compile(t, "fact", "idea"), DefaultOptions())
	matches := e.Matches(types.Document{Name: "doc.txt", Tokens: doc})
	require.Len(t, matches, 3)

	assert.Equal(t, "fact", matches[0].Noun)
	assert.Equal(t, pattern.AltThere, matches[0].Alternative)
	assert.Equal(t, "c d confirms the fact that there is hope", matches[0].Text)

	assert.Equal(t, "fact", matches[1].Noun)
	assert.Equal(t, pattern.AltPronoun, matches[1].Alternative)
	assert.Equal(t, "e f states the fact that she was right", matches[1].Text)

	assert.Equal(t, "idea", matches[2].Noun)
	assert.Equal(t, "a b raises the idea that we could win", matches[2].Text)

	for _, m := range matches {
		assert.Equal(t, "doc.txt", m.Document)
	}
}

func TestExtractDeterministic(t *testing.T) {
	doc := toks(t, "we_we_ppis2 now_now_rt confirms_confirm_vvz the_the_at fact_fact_nn1 that_that_cst the_the_at man_man_nn1 left_leave_vvd early_early_rr")
	patterns := compile(t, "fact")
	first := Extract(doc, patterns, nounSet("fact"))
	second := Extract(doc, patterns, nounSet("fact"))
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"we now confirms the fact that the man left early"}, first)
}

// --- Stream / Horizontal / Clean ---

func TestStreamAppendsSentinels(t *testing.T) {
	doc := toks(t, "a_a_xx fact_fact_nn1 b_b_xx")
	e := New(compile(t, "fact"), DefaultOptions())
	stream := e.Stream(doc)
	require.Len(t, stream, 3+types.DefaultSentinelCount)
	assert.Equal(t, "a_a_xx fact_fact_nn1 b_b_xx 0_0_0 0_0_0 0_0_0 0_0_0 0_0_0", Horizontal(stream))
}

func TestStreamEmptyWithoutOccurrences(t *testing.T) {
	e := New(compile(t, "fact"), DefaultOptions())
	assert.Nil(t, e.Stream(toks(t, "a_a_xx b_b_xx")))
}

func TestClean(t *testing.T) {
	span := []types.Token{
		types.Sentinel,
		types.Sentinel,
		{Word: "confirms", Lemma: "confirm", Tag: "vvz"},
		{Word: "the", Lemma: "the", Tag: "at"},
		{Word: "fact", Lemma: "fact", Tag: "nn1"},
	}
	assert.Equal(t, "confirms the fact", Clean(span))
	assert.Equal(t, "", Clean(nil))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := types.ExtractionConfig{WindowRadius: 3, SentinelCount: 4, PunctuationTag: "pun"}
	assert.Equal(t, Options{WindowRadius: 3, SentinelCount: 4, PunctuationTag: "pun"}, OptionsFromConfig(cfg))
}
