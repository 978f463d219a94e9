// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of the parsed record.
func (p *Printer) PrintJobDescription(record *types.JobDescription) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:   %s\n", record.Company))
	sb.WriteString(fmt.Sprintf("Title:     %s\n", record.Title))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", record.Location))
	sb.WriteString(fmt.Sprintf("Seniority: %s\n", record.Seniority))
	sb.WriteString("\n")

	writeList := func(label string, items []string, limit int) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), limit)
		for i := 0; i < count; i++ {
			item := items[i]
			if len(item) > 50 {
				item = item[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if len(items) > limit {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
		}
		sb.WriteString("\n")
	}

	writeList("Must-haves", record.MustHaves, maxItemsToShow)
	writeList("Nice-to-haves", record.NiceToHaves, 3)
	writeList("Responsibilities", record.Responsibilities, 3)

	if len(record.NormalizedSkills) > 0 {
		skills := strings.Join(record.NormalizedSkills, ", ")
		if len(skills) > 50 {
			skills = skills[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the top extracted keywords on a single block.
func (p *Printer) PrintKeywords(keywords []string) {
	if len(keywords) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top %d keywords:\n\n", len(keywords)))

	for i := 0; i < len(keywords); i += 5 {
		end := min(i+5, len(keywords))
		sb.WriteString("  " + strings.Join(keywords[i:end], ", ") + "\n")
	}

	p.printBox("EXTRACTED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedSnippets outputs the top ranked snippets with scores and tags.
func (p *Printer) PrintRankedSnippets(ranked []retrieval.RankedSnippet) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total snippets ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		snippet := ranked[i]
		text := snippet.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, text))
		sb.WriteString(fmt.Sprintf("    Score: %.3f (distance %.3f)\n", snippet.Score, snippet.Distance))
		if len(snippet.Tags) > 0 {
			tags := strings.Join(snippet.Tags, ", ")
			if len(tags) > 40 {
				tags = tags[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Tags: %s\n", tags))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more snippets", len(ranked)-maxItemsToShow))
	}

	p.printBox("TOP RANKED SNIPPETS", sb.String())
}
