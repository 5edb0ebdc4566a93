// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/shellnoun/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the matches stored by the last extract --db run",
	Long: `Query reads the SQLite database written by "extract --db" and lists
matches in output order, optionally filtered by shell noun, document, or a
substring of the match text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("db", "concordance.db", "SQLite database written by extract --db")
	queryCmd.Flags().String("noun", "", "filter by shell noun")
	queryCmd.Flags().String("document", "", "filter by corpus file name")
	queryCmd.Flags().Int("max-results", 50, "maximum number of results")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.QueryOptions{}
	opts.Noun, _ = cmd.Flags().GetString("noun")
	opts.Document, _ = cmd.Flags().GetString("document")
	opts.MaxResults, _ = cmd.Flags().GetInt("max-results")
	if len(args) == 1 {
		opts.Contains = args[0]
	}

	results, err := s.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-12s  %-10s  %-20s  %s\n", "Seq", "Noun", "Pattern", "Document", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range results {
		doc := r.Document
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-6d  %-12s  %-10s  %-20s  %s\n", r.Seq, r.Noun, r.Alternative, doc, r.Text)
	}
	return nil
}
