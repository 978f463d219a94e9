// Package ingestion loads job description text from files and URLs and
// prepares it for parsing.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	blankRunRe   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes raw posting text while preserving its structure:
// line endings become LF, in-line whitespace is collapsed, bullet markers and
// their indentation survive, and blank-line runs shrink to at most two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses internal whitespace but keeps leading indentation and
// bullet markers, which the section extractor depends on.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			rest := multiSpaceRe.ReplaceAllString(strings.TrimSpace(trimmed[len(marker):]), " ")
			return strings.Repeat(" ", indent) + marker + rest
		}
	}

	content := multiSpaceRe.ReplaceAllString(trimmed, " ")
	return strings.Repeat(" ", indent) + content
}

// IngestFromFile reads a text file, cleans it, and returns the cleaned text
// with content metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, ""), nil
}
