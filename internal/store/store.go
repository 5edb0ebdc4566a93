// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps the matches of the latest concordance run in a SQLite
// database so they can be filtered by noun, document, or text.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/shellnoun/internal/pattern"
	"github.com/pdiddy/shellnoun/pkg/types"
)

const defaultMaxResults = 50

// Store manages the concordance SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			seq INTEGER PRIMARY KEY,
			document TEXT NOT NULL,
			noun TEXT NOT NULL,
			alternative TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_noun ON matches(noun)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_document ON matches(document)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace discards the stored matches and inserts matches in their output
// order, all in one transaction.
func (s *Store) Replace(ctx context.Context, matches []types.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("clearing matches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matches (seq, document, noun, alternative, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range matches {
		if _, err := stmt.ExecContext(ctx, i, m.Document, m.Noun, pattern.AlternativeName(m.Alternative), m.Text); err != nil {
			return fmt.Errorf("inserting match %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// QueryOptions filters stored matches. Empty fields do not filter.
type QueryOptions struct {
	// Noun restricts results to one shell noun.
	Noun string

	// Document restricts results to one corpus file name.
	Document string

	// Contains is a substring the match text must contain.
	Contains string

	// MaxResults limits result count. Zero uses the default of 50.
	MaxResults int
}

// QueryResult is a stored match with its position in the run output.
type QueryResult struct {
	Seq         int    `json:"seq"`
	Document    string `json:"document"`
	Noun        string `json:"noun"`
	Alternative string `json:"alternative"`
	Text        string `json:"text"`
}

// Query returns stored matches in output order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT seq, document, noun, alternative, text FROM matches WHERE 1=1`)
	if opts.Noun != "" {
		qb.WriteString(` AND noun = ?`)
		args = append(args, opts.Noun)
	}
	if opts.Document != "" {
		qb.WriteString(` AND document = ?`)
		args = append(args, opts.Document)
	}
	if opts.Contains != "" {
		qb.WriteString(` AND instr(text, ?) > 0`)
		args = append(args, opts.Contains)
	}
	qb.WriteString(` ORDER BY seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		if err := rows.Scan(&r.Seq, &r.Document, &r.Noun, &r.Alternative, &r.Text); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of stored matches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return n, nil
}
