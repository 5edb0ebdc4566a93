// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/shellnoun/internal/pattern"
	"github.com/pdiddy/shellnoun/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "concordance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var sample = []types.Match{
	{Document: "a.txt", Noun: "fact", Alternative: pattern.AltPronoun, Text: "we now confirms the fact that he might leave"},
	{Document: "a.txt", Noun: "idea", Alternative: pattern.AltNoun, Text: "they all raised the idea that taxes would rise"},
	{Document: "b.txt", Noun: "fact", Alternative: pattern.AltThere, Text: "c d confirms the fact that there is hope"},
}

func TestReplaceAndQuery(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.Replace(ctx, sample))

	tests := []struct {
		name string
		opts QueryOptions
		want []int
	}{
		{name: "all", opts: QueryOptions{}, want: []int{0, 1, 2}},
		{name: "by noun", opts: QueryOptions{Noun: "fact"}, want: []int{0, 2}},
		{name: "by document", opts: QueryOptions{Document: "a.txt"}, want: []int{0, 1}},
		{name: "by text", opts: QueryOptions{Contains: "there is"}, want: []int{2}},
		{name: "combined", opts: QueryOptions{Noun: "fact", Document: "a.txt"}, want: []int{0}},
		{name: "limit", opts: QueryOptions{MaxResults: 1}, want: []int{0}},
		{name: "no match", opts: QueryOptions{Noun: "claim"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Query(ctx, tt.opts)
			require.NoError(t, err)
			var seqs []int
			for _, r := range results {
				seqs = append(seqs, r.Seq)
			}
			assert.Equal(t, tt.want, seqs)
		})
	}
}

func TestQueryResultFields(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.Replace(ctx, sample))

	results, err := s.Query(ctx, QueryOptions{Document: "b.txt"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, QueryResult{
		Seq:         2,
		Document:    "b.txt",
		Noun:        "fact",
		Alternative: "there",
		Text:        "c d confirms the fact that there is hope",
	}, results[0])
}

func TestReplaceDiscardsPreviousRun(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.Replace(ctx, sample))
	require.NoError(t, s.Replace(ctx, sample[:1]))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpenExistingDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "concordance.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Replace(ctx, sample))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
