package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-tailor/internal/ingestion"
	"github.com/jonathan/jd-tailor/internal/llm"
	"github.com/jonathan/jd-tailor/internal/observability"
	"github.com/jonathan/jd-tailor/internal/parsing"
	"github.com/jonathan/jd-tailor/internal/prompts"
	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/skills"
	"github.com/jonathan/jd-tailor/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Generate a tailored resume body and cover letter for a job posting",
	Long:  "Run the full pipeline: parse the posting, retrieve the best-matching snippets from the vector store, and generate a tailored resume body (and optionally a cover letter) grounded in the master profile.",
	RunE:  runTailor,
}

var (
	tailorInputFile   string
	tailorInputURL    string
	tailorRecordFile  string
	tailorSkillsFile  string
	tailorProfileFile string
	tailorOutputDir   string
	tailorTopK        int
	tailorCoverLetter bool
	tailorUseBrowser  bool
	tailorDatabaseURL string
	tailorAPIKey      string
	tailorVerbose     bool
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorInputFile, "in", "i", "", "Path to job posting text file")
	tailorCmd.Flags().StringVarP(&tailorInputURL, "url", "u", "", "URL to fetch the job posting from")
	tailorCmd.Flags().StringVarP(&tailorRecordFile, "jd", "j", "", "Path to an already-parsed job record JSON")
	tailorCmd.Flags().StringVarP(&tailorSkillsFile, "skills", "s", "", "Path to skill synonym map JSON")
	tailorCmd.Flags().StringVarP(&tailorProfileFile, "profile", "p", "", "Path to master profile JSON (required)")
	tailorCmd.Flags().StringVarP(&tailorOutputDir, "out", "o", ".", "Directory for generated documents")
	tailorCmd.Flags().IntVarP(&tailorTopK, "top-k", "k", 8, "Number of snippets to retrieve")
	tailorCmd.Flags().BoolVar(&tailorCoverLetter, "cover-letter", false, "Also generate a cover letter")
	tailorCmd.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered postings")
	tailorCmd.Flags().StringVar(&tailorDatabaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL env var)")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print pipeline progress summaries")
	_ = tailorCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	masterProfile, err := os.ReadFile(tailorProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read master profile: %w", err)
	}

	ctx := context.Background()

	record, err := resolveRecord(ctx)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stderr)
	if tailorVerbose {
		printer.PrintJobDescription(record)
	}

	snippetStore, client, err := openStore(ctx, tailorDatabaseURL, tailorAPIKey)
	if err != nil {
		return err
	}
	defer snippetStore.Close()
	defer func() { _ = client.Close() }()

	retriever := retrieval.New(snippetStore)
	ranked, err := retriever.RetrieveRanked(ctx, record.NormalizedText, record.NormalizedSkills, tailorTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}
	if tailorVerbose {
		printer.PrintRankedSnippets(ranked)
	}

	snippetTexts := make([]string, 0, len(ranked))
	for _, snippet := range ranked {
		snippetTexts = append(snippetTexts, snippet.Text)
	}

	system := prompts.SystemPrompt()

	resumePrompt, err := prompts.BuildResumePrompt(record, snippetTexts, string(masterProfile))
	if err != nil {
		return fmt.Errorf("failed to build resume prompt: %w", err)
	}

	resumeBody, err := client.GenerateContent(ctx, system+"\n\n"+resumePrompt, llm.TierStandard)
	if err != nil {
		return fmt.Errorf("resume generation failed: %w", err)
	}
	if err := writeDocument("resume.txt", resumeBody); err != nil {
		return err
	}

	if tailorCoverLetter {
		clPrompt, err := prompts.BuildCoverLetterPrompt(record, snippetTexts, string(masterProfile))
		if err != nil {
			return fmt.Errorf("failed to build cover letter prompt: %w", err)
		}

		coverLetter, err := client.GenerateContent(ctx, system+"\n\n"+clPrompt, llm.TierStandard)
		if err != nil {
			return fmt.Errorf("cover letter generation failed: %w", err)
		}
		if err := writeDocument("cover_letter.txt", coverLetter); err != nil {
			return err
		}
	}

	return nil
}

// resolveRecord loads a pre-parsed record or parses the posting from its
// file or URL source.
func resolveRecord(ctx context.Context) (*types.JobDescription, error) {
	if tailorRecordFile != "" {
		return loadRecord(tailorRecordFile)
	}

	var rawText string
	switch {
	case tailorInputFile != "":
		text, _, err := ingestion.IngestFromFile(tailorInputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job posting: %w", err)
		}
		rawText = text
	case tailorInputURL != "":
		text, _, err := ingestion.IngestFromURL(ctx, tailorInputURL, tailorUseBrowser, tailorVerbose)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		rawText = text
	default:
		return nil, fmt.Errorf("must provide --jd, --in, or --url")
	}

	skillMap := skills.LoadOrEmpty(tailorSkillsFile)
	return parsing.ParseJD(rawText, skillMap, 0), nil
}

// writeDocument writes a generated document into the output directory.
func writeDocument(name, content string) error {
	path := filepath.Join(tailorOutputDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
