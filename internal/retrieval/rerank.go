package retrieval

import (
	"sort"
	"strings"
)

// tagBonusWeight scales the lexical overlap bonus added on top of the
// semantic base score.
const tagBonusWeight = 0.25

// RankedSnippet is a candidate augmented with its composite score.
type RankedSnippet struct {
	Candidate
	Score float64
}

// baseScore converts an index distance to a similarity score in (0, 1],
// monotonically decreasing in distance.
func baseScore(distance float64) float64 {
	return 1.0 / (1.0 + distance)
}

// tagOverlapBonus computes the Jaccard index between a candidate's tags and
// the detected skill set, both case-folded. An empty union scores 0 rather
// than dividing by zero.
func tagOverlapBonus(tags []string, skillSet map[string]bool) float64 {
	tagSet := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tagSet[strings.ToLower(tag)] = true
	}

	intersection := 0
	union := len(skillSet)
	for tag := range tagSet {
		if skillSet[tag] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		union = 1
	}

	return float64(intersection) / float64(union)
}

// Rerank scores candidates with base + tagBonusWeight*bonus and sorts them by
// composite score descending. The sort is stable, so ties keep the index's
// retrieval order.
func Rerank(candidates []Candidate, detectedSkills []string) []RankedSnippet {
	skillSet := make(map[string]bool, len(detectedSkills))
	for _, skill := range detectedSkills {
		skillSet[strings.ToLower(skill)] = true
	}

	ranked := make([]RankedSnippet, 0, len(candidates))
	for _, c := range candidates {
		score := baseScore(c.Distance) + tagBonusWeight*tagOverlapBonus(c.Tags, skillSet)
		ranked = append(ranked, RankedSnippet{Candidate: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
