package parsing

import (
	"regexp"
	"sort"
	"strings"
)

// tokenRe keeps alphanumeric runs plus +, # and . of length >= 3, so tokens
// like "c++", "c#" and "node.js" survive tokenization.
var tokenRe = regexp.MustCompile(`[A-Za-z0-9+#.]{3,}`)

// stopwords is the fixed set of filler words excluded from keyword ranking.
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "to": true, "of": true, "in": true,
	"on": true, "for": true, "with": true, "a": true, "an": true, "by": true,
	"as": true, "is": true, "are": true, "be": true, "will": true, "this": true,
	"that": true, "we": true, "you": true, "our": true, "your": true, "at": true,
	"from": true, "across": true, "including": true, "such": true, "etc": true,
	"etc.": true, "about": true, "into": true, "within": true, "over": true,
	"under": true, "more": true, "most": true, "least": true, "ability": true,
	"experience": true, "years": true, "year": true, "plus": true,
	"responsibilities": true, "requirements": true, "preferred": true,
	"must": true, "nice": true, "have": true, "skills": true, "role": true,
	"job": true, "description": true, "position": true, "candidate": true,
	"ideal": true, "work": true, "working": true,
}

// TopKeywords ranks tokens of already-normalized (lower-cased) text by
// frequency and returns up to n of them. Frequency ties keep first-seen order
// in the token stream, so equal-frequency terms are not reordered lexically.
func TopKeywords(normalizedText string, n int) []string {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	order := []string{}
	for _, token := range tokenRe.FindAllString(strings.ToLower(normalizedText), -1) {
		if stopwords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
