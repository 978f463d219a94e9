// Package retrieval ranks prior-experience snippets against a parsed job
// description by combining semantic distance with lexical tag overlap.
package retrieval

import "context"

// Candidate is one result returned by a vector index query. Distance is the
// index's similarity distance (non-negative, 0 = identical).
type Candidate struct {
	Text      string
	Tags      []string
	Seniority string
	Distance  float64
}

// Index is the query capability the retriever requires from a vector store.
// Implementations own persistence, embedding, and population; the retriever
// only depends on this contract.
type Index interface {
	Query(ctx context.Context, text string, limit int) ([]Candidate, error)
}
