// Package types provides type definitions for structured data used throughout the jd-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Caps applied when assembling a JobDescription record
const (
	MaxMustHaves        = 15
	MaxNiceToHaves      = 15
	MaxResponsibilities = 30
	DefaultTopKeywords  = 30
)

// JobDescription represents a structured job posting extracted from raw text.
// String fields are empty (never null) when a heuristic cannot identify them.
type JobDescription struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Seniority        string   `json:"seniority"`
	MustHaves        []string `json:"must_haves"`
	NiceToHaves      []string `json:"nice_to_haves"`
	Responsibilities []string `json:"responsibilities"`
	Keywords         []string `json:"keywords"`
	NormalizedSkills []string `json:"normalized_skills"`
	NormalizedText   string   `json:"normalized_text"`
}
