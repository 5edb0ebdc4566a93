// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	cfg := ExtractionConfig{}.WithDefaults()
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, LineSkip, cfg.LinePolicy)
	assert.Equal(t, DefaultWindowRadius, cfg.WindowRadius)
	assert.Equal(t, DefaultSentinelCount, cfg.SentinelCount)
	assert.Empty(t, cfg.PunctuationTag)

	kept := ExtractionConfig{Workers: 3, LinePolicy: LineFail, OutputFile: "kwic.txt"}.WithDefaults()
	assert.Equal(t, 3, kept.Workers)
	assert.Equal(t, LineFail, kept.LinePolicy)
	assert.Equal(t, "kwic.txt", kept.OutputFile)
}

func TestValidate(t *testing.T) {
	valid := ExtractionConfig{InputDir: "in", OutputDir: "out", ShellNouns: []string{"fact"}}

	tests := []struct {
		name    string
		mutate  func(*ExtractionConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*ExtractionConfig) {}},
		{name: "missing input", mutate: func(c *ExtractionConfig) { c.InputDir = "" }, wantErr: "input directory"},
		{name: "missing output", mutate: func(c *ExtractionConfig) { c.OutputDir = "" }, wantErr: "output directory"},
		{name: "no nouns", mutate: func(c *ExtractionConfig) { c.ShellNouns = nil }, wantErr: "shell noun"},
		{name: "blank noun", mutate: func(c *ExtractionConfig) { c.ShellNouns = []string{"fact", ""} }, wantErr: "blank"},
		{name: "noun with space", mutate: func(c *ExtractionConfig) { c.ShellNouns = []string{"the fact"} }, wantErr: "whitespace"},
		{name: "bad policy", mutate: func(c *ExtractionConfig) { c.LinePolicy = "ignore" }, wantErr: "line policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.ShellNouns = append([]string(nil), valid.ShellNouns...)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Word: "fact", Lemma: "fact", Tag: "nn1"}
	assert.Equal(t, "fact_fact_nn1", tok.String())
	assert.False(t, tok.IsSentinel())
	assert.True(t, Sentinel.IsSentinel())
	assert.Equal(t, "0_0_0", Sentinel.String())
}
