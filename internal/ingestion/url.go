package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/jd-tailor/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches a job posting page, extracts its main text, cleans
// it, and returns the cleaned text with metadata. When useBrowser is set and
// the plain HTTP fetch yields too little content, it falls back to headless
// browser rendering for SPA job boards.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched %d bytes from %s", len(result.HTML), urlStr)
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), rendering with browser", len(text))
		}
		if browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, verbose); browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(browserHTML, fetch.JobPostingSelectors()); extractErr == nil {
				text = rendered
			}
		} else if verbose {
			log.Printf("[VERBOSE] Browser rendering failed: %v, keeping HTTP content", browserErr)
		}
	}

	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, urlStr), nil
}
