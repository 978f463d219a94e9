package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jd-tailor/internal/retrieval"
	"github.com/jonathan/jd-tailor/internal/types"
)

func TestPrintJobDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDescription(&types.JobDescription{
		Title:     "Senior DevOps Engineer",
		Company:   "Acme",
		Location:  "Remote",
		Seniority: "Senior",
		MustHaves: []string{
			"Kubernetes experience",
			"Terraform modules",
			"CI/CD pipelines",
			"Linux administration",
			"Cloud networking",
			"Observability stacks",
		},
		NiceToHaves:      []string{"Golang services"},
		NormalizedSkills: []string{"kubernetes", "terraform"},
	})

	out := buf.String()
	assert.Contains(t, out, "PARSED JOB DESCRIPTION")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Senior DevOps Engineer")
	assert.Contains(t, out, "Must-haves:")
	assert.Contains(t, out, "... and 1 more")
	assert.Contains(t, out, "kubernetes, terraform")
}

func TestPrintJobDescription_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobDescription(nil)
	assert.Empty(t, buf.String())
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords([]string{"kubernetes", "terraform", "aws", "docker", "golang", "linux"})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED KEYWORDS")
	assert.Contains(t, out, "Top 6 keywords")
	assert.Contains(t, out, "kubernetes, terraform, aws, docker, golang")
	assert.Contains(t, out, "linux")
}

func TestPrintKeywords_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintKeywords(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRankedSnippets(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedSnippets([]retrieval.RankedSnippet{
		{
			Candidate: retrieval.Candidate{
				Text:     "Reduced deploy time by 60%",
				Tags:     []string{"kubernetes", "ci"},
				Distance: 0.2,
			},
			Score: 0.883,
		},
		{
			Candidate: retrieval.Candidate{
				Text:     "Migrated legacy infra to Terraform",
				Distance: 0.5,
			},
			Score: 0.667,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "TOP RANKED SNIPPETS")
	assert.Contains(t, out, "#1  Reduced deploy time by 60%")
	assert.Contains(t, out, "Score: 0.883")
	assert.Contains(t, out, "Tags: kubernetes, ci")
	assert.Contains(t, out, "#2  Migrated legacy infra to Terraform")
}

func TestPrintRankedSnippets_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRankedSnippets(nil)
	assert.Empty(t, buf.String())
}
