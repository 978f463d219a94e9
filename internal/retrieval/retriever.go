package retrieval

import "context"

// maxCandidatePool caps how many candidates are pulled from the index for
// re-ranking, regardless of the requested top-K.
const maxCandidatePool = 50

// Retriever queries an injected vector index and re-ranks the results. The
// index handle is caller-owned: open it once and share it across calls.
type Retriever struct {
	index Index
}

// New creates a Retriever over the given index.
func New(index Index) *Retriever {
	return &Retriever{index: index}
}

// Retrieve returns up to topK snippet texts ranked by composite score for the
// query text and the detected skill set. An empty or unpopulated index yields
// an empty result, not an error; only index transport failures propagate.
func (r *Retriever) Retrieve(ctx context.Context, queryText string, detectedSkills []string, topK int) ([]string, error) {
	ranked, err := r.RetrieveRanked(ctx, queryText, detectedSkills, topK)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(ranked))
	for _, snippet := range ranked {
		texts = append(texts, snippet.Text)
	}
	return texts, nil
}

// RetrieveRanked is Retrieve with scores and tags preserved, for callers that
// surface ranking detail.
func (r *Retriever) RetrieveRanked(ctx context.Context, queryText string, detectedSkills []string, topK int) ([]RankedSnippet, error) {
	if topK <= 0 {
		return nil, nil
	}

	limit := topK * 2
	if limit > maxCandidatePool {
		limit = maxCandidatePool
	}

	candidates, err := r.index.Query(ctx, queryText, limit)
	if err != nil {
		return nil, err
	}

	ranked := Rerank(candidates, detectedSkills)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}
