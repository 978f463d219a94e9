// Package main provides the jd_tailor CLI for parsing job descriptions,
// managing the snippet index, and generating tailored application documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jd_tailor",
	Short: "Job description parsing and snippet retrieval toolkit",
	Long:  "jd_tailor normalizes raw job postings into structured records, indexes resume snippets in a vector store, and retrieves the best-matching snippets for tailoring resumes and cover letters.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
