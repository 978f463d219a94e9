package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jd-tailor/internal/ingestion"
	"github.com/jonathan/jd-tailor/internal/llm"
	"github.com/jonathan/jd-tailor/internal/store"
)

var ingestSnippetsCmd = &cobra.Command{
	Use:   "ingest-snippets",
	Short: "Embed and index resume snippets from a JSONL file",
	Long:  "Read snippets from a JSONL file, embed each one, and upsert them into the vector store. Re-running with the same snippet IDs replaces existing rows.",
	RunE:  runIngestSnippets,
}

var (
	ingestSnippetsFile string
	ingestDatabaseURL  string
	ingestAPIKey       string
	ingestConcurrency  int
)

func init() {
	ingestSnippetsCmd.Flags().StringVarP(&ingestSnippetsFile, "snippets", "s", "", "Path to snippets JSONL file (required)")
	ingestSnippetsCmd.Flags().StringVar(&ingestDatabaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	ingestSnippetsCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	ingestSnippetsCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 4, "Number of snippets embedded in parallel")
	_ = ingestSnippetsCmd.MarkFlagRequired("snippets")

	rootCmd.AddCommand(ingestSnippetsCmd)
}

func runIngestSnippets(_ *cobra.Command, _ []string) error {
	databaseURL := ingestDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
	}

	apiKey := ingestAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key)")
	}

	snippets, err := ingestion.ReadSnippetsFile(ingestSnippetsFile)
	if err != nil {
		return fmt.Errorf("failed to read snippets: %w", err)
	}
	if len(snippets) == 0 {
		return fmt.Errorf("no snippets found in %s", ingestSnippetsFile)
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	snippetStore, err := store.Open(ctx, databaseURL, client)
	if err != nil {
		return fmt.Errorf("failed to open snippet store: %w", err)
	}
	defer snippetStore.Close()

	if err := snippetStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)
	for _, snippet := range snippets {
		g.Go(func() error {
			if err := snippetStore.Upsert(gctx, snippet); err != nil {
				return fmt.Errorf("failed to index snippet %q: %w", snippet.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total, err := snippetStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count snippets: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Indexed %d snippets (%d total in store)\n", len(snippets), total)
	return nil
}
