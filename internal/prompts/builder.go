package prompts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jd-tailor/internal/types"
)

// promptJD is the trimmed view of a record handed to the model; the full
// keyword list and raw body are noise at prompt size.
type promptJD struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Seniority        string   `json:"seniority"`
	MustHaves        []string `json:"must_haves"`
	NiceToHaves      []string `json:"nice_to_haves"`
	Responsibilities []string `json:"responsibilities"`
	NormalizedSkills []string `json:"normalized_skills"`
}

// SystemPrompt returns the system instruction for tailoring conversations.
func SystemPrompt() string {
	return MustGet("tailoring.json", "system")
}

// BuildResumePrompt assembles the resume tailoring prompt from the parsed
// record, the ranked snippet texts, and the candidate's master profile JSON.
func BuildResumePrompt(record *types.JobDescription, snippets []string, masterProfile string) (string, error) {
	return buildTailoringPrompt("tailor-resume", record, snippets, masterProfile)
}

// BuildCoverLetterPrompt assembles the cover letter prompt.
func BuildCoverLetterPrompt(record *types.JobDescription, snippets []string, masterProfile string) (string, error) {
	return buildTailoringPrompt("tailor-cover-letter", record, snippets, masterProfile)
}

func buildTailoringPrompt(key string, record *types.JobDescription, snippets []string, masterProfile string) (string, error) {
	template, err := Get("tailoring.json", key)
	if err != nil {
		return "", err
	}

	jdJSON, err := json.MarshalIndent(promptJD{
		Title:            record.Title,
		Company:          record.Company,
		Location:         record.Location,
		Seniority:        record.Seniority,
		MustHaves:        record.MustHaves,
		NiceToHaves:      record.NiceToHaves,
		Responsibilities: record.Responsibilities,
		NormalizedSkills: record.NormalizedSkills,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal job description for prompt: %w", err)
	}

	var sb strings.Builder
	for i, snippet := range snippets {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, snippet))
	}

	return Format(template, map[string]string{
		"MasterProfile":  masterProfile,
		"JobDescription": string(jdJSON),
		"Snippets":       sb.String(),
		"SnippetCount":   strconv.Itoa(len(snippets)),
	}), nil
}
