// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus discovers vertical corpus files and parses them into token
// sequences. Each line of a file holds one token as whitespace-separated
// word, lemma, and part-of-speech tag.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/shellnoun/pkg/types"
)

const (
	corpusExt = ".txt"

	// maxLineSize bounds a single corpus line. COCA lines are short; the
	// limit only guards against binary input.
	maxLineSize = 1 << 20
)

// ErrMalformedLine is wrapped by LineError for lines with fewer than three fields.
var ErrMalformedLine = errors.New("malformed token line")

// LineError reports a malformed line in a corpus file.
type LineError struct {
	File string
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, ErrMalformedLine, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedLine.
func (e *LineError) Unwrap() error { return ErrMalformedLine }

// Discover lists the .txt files directly inside dir, sorted by name.
// Subdirectories are not entered and other files are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), corpusExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ParseFile reads the corpus file at path. The document name is the file's
// base name.
func ParseFile(path string, policy types.LinePolicy, logger *zap.Logger) (types.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("opening corpus file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f, filepath.Base(path), policy, logger)
	if err != nil {
		return types.Document{}, err
	}
	return doc, nil
}

// Parse reads tokens from r. Blank lines are ignored and fields beyond the
// third are dropped. A line with fewer than three fields is skipped with a
// warning under LineSkip and rejects the document under LineFail.
func Parse(r io.Reader, name string, policy types.LinePolicy, logger *zap.Logger) (types.Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc := types.Document{Name: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	skipped := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			lerr := &LineError{File: name, Line: lineNo, Text: line}
			if policy == types.LineFail {
				return types.Document{}, lerr
			}
			logger.Warn("skipping malformed line",
				zap.String("file", name),
				zap.Int("line", lineNo),
				zap.String("text", line),
			)
			skipped++
			continue
		}
		doc.Tokens = append(doc.Tokens, types.Token{Word: fields[0], Lemma: fields[1], Tag: fields[2]})
	}
	if err := sc.Err(); err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", name, err)
	}

	if skipped > 0 {
		logger.Info("parsed document with skipped lines",
			zap.String("file", name),
			zap.Int("tokens", len(doc.Tokens)),
			zap.Int("skipped", skipped),
		)
	}
	return doc, nil
}
