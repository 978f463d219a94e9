package parsing

import (
	"strings"

	"github.com/jonathan/jd-tailor/internal/skills"
	"github.com/jonathan/jd-tailor/internal/types"
)

// ParseJD parses raw job description text into a structured record.
//
// Heuristic field extraction runs on the raw text first (it depends on the
// original casing), then the full body is normalized against the skill map
// for keyword and skill detection, and each bullet line is normalized
// independently so the section lists match downstream scoring vocabulary.
//
// There is no error path: text with no recognizable structure yields a record
// of mostly-empty fields, which is absence, not failure.
func ParseJD(rawText string, skillMap skills.Map, topKeywords int) *types.JobDescription {
	rawText = strings.TrimSpace(rawText)
	if topKeywords <= 0 {
		topKeywords = types.DefaultTopKeywords
	}

	fields := ExtractFields(rawText)

	normalized := skills.Normalize(rawText, skillMap)

	record := &types.JobDescription{
		Title:            fields.Title,
		Company:          fields.Company,
		Location:         fields.Location,
		Seniority:        fields.Seniority,
		MustHaves:        normalizeLines(fields.MustHaves, skillMap, types.MaxMustHaves),
		NiceToHaves:      normalizeLines(fields.NiceToHaves, skillMap, types.MaxNiceToHaves),
		Responsibilities: normalizeLines(fields.Responsibilities, skillMap, types.MaxResponsibilities),
		Keywords:         TopKeywords(normalized.Text, topKeywords),
		NormalizedSkills: normalized.DetectedSorted(),
		NormalizedText:   normalized.Text,
	}

	return record
}

// normalizeLines normalizes each bullet line independently, sentence-cases
// the result, and truncates to the section cap.
func normalizeLines(lines []string, skillMap skills.Map, limit int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		result := skills.Normalize(line, skillMap)
		out = append(out, SentenceCase(result.Text))
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
