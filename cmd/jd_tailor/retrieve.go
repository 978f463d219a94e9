package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-tailor/internal/llm"
	"github.com/jonathan/jd-tailor/internal/observability"
	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/store"
	"github.com/jonathan/jd-tailor/internal/types"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve the top matching snippets for a parsed job record",
	Long:  "Load a parsed job record, query the vector store with its normalized text, and print the top-K snippets after re-ranking by skill overlap.",
	RunE:  runRetrieve,
}

var (
	retrieveRecordFile  string
	retrieveTopK        int
	retrieveDatabaseURL string
	retrieveAPIKey      string
	retrieveVerbose     bool
)

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveRecordFile, "jd", "j", "", "Path to parsed job record JSON (required)")
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 5, "Number of snippets to retrieve")
	retrieveCmd.Flags().StringVar(&retrieveDatabaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	retrieveCmd.Flags().StringVar(&retrieveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	retrieveCmd.Flags().BoolVarP(&retrieveVerbose, "verbose", "v", false, "Print scores and tags for each snippet")
	_ = retrieveCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(_ *cobra.Command, _ []string) error {
	record, err := loadRecord(retrieveRecordFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	snippetStore, client, err := openStore(ctx, retrieveDatabaseURL, retrieveAPIKey)
	if err != nil {
		return err
	}
	defer snippetStore.Close()
	defer func() { _ = client.Close() }()

	retriever := retrieval.New(snippetStore)
	ranked, err := retriever.RetrieveRanked(ctx, record.NormalizedText, record.NormalizedSkills, retrieveTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if retrieveVerbose {
		observability.NewPrinter(os.Stderr).PrintRankedSnippets(ranked)
	}

	for i, snippet := range ranked {
		fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, snippet.Text)
	}
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stderr, "No snippets matched; is the store populated?")
	}
	return nil
}

// loadRecord reads a parsed job record from disk.
func loadRecord(path string) (*types.JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job record: %w", err)
	}

	var record types.JobDescription
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse job record JSON: %w", err)
	}
	return &record, nil
}

// openStore wires the embedding client and the vector store from flag or
// environment configuration.
func openStore(ctx context.Context, databaseURL, apiKey string) (*store.SnippetStore, llm.Client, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, nil, fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
	}

	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	snippetStore, err := store.Open(ctx, databaseURL, client)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to open snippet store: %w", err)
	}

	return snippetStore, client, nil
}
