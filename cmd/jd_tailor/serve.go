package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-tailor/internal/llm"
	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/server"
	"github.com/jonathan/jd-tailor/internal/skills"
	"github.com/jonathan/jd-tailor/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the HTTP server exposing POST /api/v1/parse and POST /api/v1/retrieve. The retrieve endpoint requires a database URL and API key; without them the server runs in parse-only mode.",
	RunE:  runServe,
}

var (
	servePort        int
	serveSkillsFile  string
	serveDatabaseURL string
	serveAPIKey      string
	serveTopKeywords int
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveSkillsFile, "skills", "s", "", "Path to skill synonym map JSON")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().IntVar(&serveTopKeywords, "top-keywords", 0, "Default number of keywords per parsed record")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := serveDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	apiKey := serveAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	ctx := context.Background()

	var index retrieval.Index
	if databaseURL != "" && apiKey != "" {
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

		index = snippetStore
	} else {
		fmt.Fprintln(os.Stderr, "No database URL or API key configured; /api/v1/retrieve is disabled")
	}

	s := server.New(server.Config{
		Port:        servePort,
		SkillMap:    skills.LoadOrEmpty(serveSkillsFile),
		Index:       index,
		TopKeywords: serveTopKeywords,
	})

	return s.Start()
}
