package ingestion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/jd-tailor/internal/types"
)

// ReadSnippetsFile reads a JSONL file of snippets, one JSON object per line:
// {"id": "...", "text": "...", "tags": [...], "seniority": "..."}.
// Blank lines are skipped; a snippet without an id or text is an error.
func ReadSnippetsFile(path string) ([]types.Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snippets file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var snippets []types.Snippet
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var snippet types.Snippet
		if err := json.Unmarshal([]byte(line), &snippet); err != nil {
			return nil, fmt.Errorf("failed to parse snippet on line %d: %w", lineNo, err)
		}
		if snippet.ID == "" {
			return nil, fmt.Errorf("snippet on line %d has no id", lineNo)
		}
		if strings.TrimSpace(snippet.Text) == "" {
			return nil, fmt.Errorf("snippet %s has no text", snippet.ID)
		}

		snippets = append(snippets, snippet)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snippets file: %w", err)
	}

	return snippets, nil
}
