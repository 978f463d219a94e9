package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-tailor/internal/config"
	"github.com/jonathan/jd-tailor/internal/ingestion"
	"github.com/jonathan/jd-tailor/internal/observability"
	"github.com/jonathan/jd-tailor/internal/parsing"
	"github.com/jonathan/jd-tailor/internal/schemas"
	"github.com/jonathan/jd-tailor/internal/skills"
)

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd",
	Short: "Parse a job posting into a structured JSON record",
	Long:  "Parse a job posting from a text file or URL into a structured record with extracted fields, normalized skills, and top keywords.",
	RunE:  runParseJD,
}

var (
	parseInputFile   string
	parseInputURL    string
	parseOutputFile  string
	parseSkillsFile  string
	parseTopKeywords int
	parseUseBrowser  bool
	parseVerbose     bool
	parseConfigFile  string
)

func init() {
	parseJDCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job posting text file")
	parseJDCmd.Flags().StringVarP(&parseInputURL, "url", "u", "", "URL to fetch the job posting from")
	parseJDCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJDCmd.Flags().StringVarP(&parseSkillsFile, "skills", "s", "", "Path to skill synonym map JSON")
	parseJDCmd.Flags().IntVar(&parseTopKeywords, "top-keywords", 0, "Number of keywords to keep (default 30)")
	parseJDCmd.Flags().BoolVar(&parseUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered postings")
	parseJDCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a summary of the parsed record")
	parseJDCmd.Flags().StringVarP(&parseConfigFile, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(parseJDCmd)
}

func runParseJD(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Job:         parseInputFile,
		JobURL:      parseInputURL,
		Skills:      parseSkillsFile,
		TopKeywords: parseTopKeywords,
		UseBrowser:  parseUseBrowser,
		Verbose:     parseVerbose,
	}
	if parseConfigFile != "" {
		fileCfg, err := config.LoadConfig(parseConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("must provide --in or --url")
	}

	rawText, err := loadJobText(cfg)
	if err != nil {
		return err
	}

	skillMap := skills.LoadOrEmpty(cfg.Skills)
	record := parsing.ParseJD(rawText, skillMap, cfg.TopKeywords)

	if err := schemas.ValidateRecord(record); err != nil {
		return fmt.Errorf("parsed record failed schema validation: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobDescription(record)
		printer.PrintKeywords(record.Keywords)
	}

	jsonBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if parseOutputFile == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(parseOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", parseOutputFile)
	return nil
}

// loadJobText reads the posting from a file or fetches it from a URL,
// cleaning it either way.
func loadJobText(cfg config.Config) (string, error) {
	if cfg.Job != "" {
		text, _, err := ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job posting: %w", err)
		}
		return text, nil
	}

	text, _, err := ingestion.IngestFromURL(context.Background(), cfg.JobURL, cfg.UseBrowser, cfg.Verbose)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return text, nil
}
