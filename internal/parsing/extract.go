// Package parsing turns raw job description text into a structured
// JobDescription record using heuristic extraction and skill normalization.
package parsing

import (
	"regexp"
	"strings"
)

// Fields holds the raw heuristic extraction results before normalization.
type Fields struct {
	Title            string
	Company          string
	Location         string
	Seniority        string
	MustHaves        []string
	NiceToHaves      []string
	Responsibilities []string
}

// Section header patterns. The first case-insensitive match anywhere in the
// text anchors the bullet scan for that section.
var (
	responsibilitiesHeaderRe = regexp.MustCompile(`(?i)(responsibilities|what you'll do|what you will do|duties|role and responsibilities)`)
	mustHavesHeaderRe        = regexp.MustCompile(`(?i)(requirements|must[-\s]*have|qualifications|required)`)
	niceToHavesHeaderRe      = regexp.MustCompile(`(?i)(nice[-\s]*to[-\s]*have|preferred|bonus|good to have)`)
)

// seniorityRule pairs a cue pattern with the label it implies. Rules are
// evaluated in order; the first hit wins.
type seniorityRule struct {
	pattern *regexp.Regexp
	label   string
}

var seniorityRules = []seniorityRule{
	{regexp.MustCompile(`(?i)\b(principal|lead|staff)\b`), "Principal/Lead"},
	{regexp.MustCompile(`(?i)\b(senior|sr\.)\b`), "Senior"},
	{regexp.MustCompile(`(?i)\b(mid[-\s]*level|intermediate)\b`), "Mid"},
	{regexp.MustCompile(`(?i)\b(junior|jr\.)\b`), "Junior"},
}

var (
	titleLabelRe    = regexp.MustCompile(`(?im)^\s*title\s*[:\-]\s*(.+)$`)
	companyLabelRe  = regexp.MustCompile(`(?im)^\s*company\s*[:\-]\s*(.+)$`)
	locationLabelRe = regexp.MustCompile(`(?im)^\s*location\s*[:\-]\s*(.+)$`)

	aboutCompanyRe  = regexp.MustCompile(`(?im)about\s+([A-Z][A-Za-z0-9&\-\s]{2,40})`)
	genericHeaderRe = regexp.MustCompile(`(?i)(company|about us|who we are)`)
	locationCueRe   = regexp.MustCompile(`(?i)\b(singapore|london|new york|sydney|remote|hybrid|onsite)\b`)

	bulletRunRe    = regexp.MustCompile(`(?s)(?:\r?\n|\r)\s*([\-*\x{2022}].+?)(?:\n\s*\n|$)`)
	bulletMarkerRe = regexp.MustCompile(`^\s*[\-*\x{2022}]\s+`)

	trailingPunctRe = regexp.MustCompile(`[;,:.\-—]+$`)
)

// strategy is one independent extraction attempt: it returns a non-empty
// string on success, empty on no confident match.
type strategy func(text string) string

// firstNonEmpty tries strategies in priority order and returns the first hit.
func firstNonEmpty(text string, strategies ...strategy) string {
	for _, s := range strategies {
		if v := s(text); v != "" {
			return v
		}
	}
	return ""
}

// ExtractFields applies the field heuristics to raw, non-normalized text.
// Extraction relies on original casing and punctuation, so it must run before
// any skill normalization.
func ExtractFields(text string) Fields {
	return Fields{
		Title:            firstNonEmpty(text, titleFromLabel, titleFromFirstLine),
		Company:          firstNonEmpty(text, companyFromLabel, companyFromAbout),
		Location:         firstNonEmpty(text, locationFromLabel, locationFromCue),
		Seniority:        guessSeniority(text),
		MustHaves:        extractBullets(text, mustHavesHeaderRe),
		NiceToHaves:      extractBullets(text, niceToHavesHeaderRe),
		Responsibilities: extractBullets(text, responsibilitiesHeaderRe),
	}
}

func titleFromLabel(text string) string {
	if m := titleLabelRe.FindStringSubmatch(text); m != nil {
		return CleanLine(m[1])
	}
	return ""
}

// titleFromFirstLine takes the first non-blank line as the title when it is
// short enough to be a heading and is not boilerplate about the company.
func titleFromFirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) <= 12 && !genericHeaderRe.MatchString(line) {
			return CleanLine(line)
		}
		return ""
	}
	return ""
}

func companyFromLabel(text string) string {
	if m := companyLabelRe.FindStringSubmatch(text); m != nil {
		return CleanLine(m[1])
	}
	return ""
}

func companyFromAbout(text string) string {
	if m := aboutCompanyRe.FindStringSubmatch(text); m != nil {
		return CleanLine(m[1])
	}
	return ""
}

func locationFromLabel(text string) string {
	if m := locationLabelRe.FindStringSubmatch(text); m != nil {
		return CleanLine(m[1])
	}
	return ""
}

func locationFromCue(text string) string {
	if m := locationCueRe.FindString(text); m != "" {
		return titleCase(m)
	}
	return ""
}

func guessSeniority(text string) string {
	for _, rule := range seniorityRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return ""
}

// extractBullets locates the section header, then pulls the first contiguous
// run of bullet-marked lines after it. The run ends at a blank line or end of
// text. Missing header or missing bullets both yield an empty slice.
func extractBullets(text string, headerRe *regexp.Regexp) []string {
	loc := headerRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	section := text[loc[0]:]

	m := bulletRunRe.FindStringSubmatch(section)
	if m == nil {
		return nil
	}

	var out []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if !bulletMarkerRe.MatchString(line) {
			continue
		}
		cleaned := strings.TrimSpace(bulletMarkerRe.ReplaceAllString(line, ""))
		if cleaned != "" {
			out = append(out, CleanLine(cleaned))
		}
	}
	return out
}

// CleanLine strips surrounding whitespace and any trailing run of punctuation
// that commonly trails headings and bullet lines.
func CleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = trailingPunctRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SentenceCase capitalizes the first character only, leaving the rest as-is.
func SentenceCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleCase upper-cases the first letter of each word, as for matched
// location cues ("new york" -> "New York").
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
