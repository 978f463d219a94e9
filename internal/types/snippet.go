package types

// Snippet is a short, tagged unit of prior-experience text eligible for
// retrieval and inclusion in generated documents.
type Snippet struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags,omitempty"`
	Seniority string   `json:"seniority,omitempty"`
}
