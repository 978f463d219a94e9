package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKeywordsFrequencyOrder(t *testing.T) {
	text := "terraform terraform terraform kubernetes kubernetes grafana"

	keywords := TopKeywords(text, 10)

	assert.Equal(t, []string{"terraform", "kubernetes", "grafana"}, keywords)
}

func TestTopKeywordsTiesKeepFirstSeenOrder(t *testing.T) {
	// "zebra" appears before "alpha" in the stream; equal frequency must not
	// be reordered lexically.
	text := "zebra alpha zebra alpha"

	keywords := TopKeywords(text, 10)

	assert.Equal(t, []string{"zebra", "alpha"}, keywords)
}

func TestTopKeywordsExcludesStopwords(t *testing.T) {
	text := "the the the and and terraform experience experience requirements"

	keywords := TopKeywords(text, 10)

	assert.Equal(t, []string{"terraform"}, keywords)
}

func TestTopKeywordsTruncates(t *testing.T) {
	text := "one1 two2 three3 four4 five5"

	keywords := TopKeywords(text, 3)

	assert.Len(t, keywords, 3)
}

func TestTopKeywordsSpecialTokens(t *testing.T) {
	text := "c++ c++ c## node.js node.js node.js"

	keywords := TopKeywords(text, 10)

	assert.Equal(t, []string{"node.js", "c++", "c##"}, keywords)
}

func TestTopKeywordsShortTokensDropped(t *testing.T) {
	// Tokens shorter than three characters never surface.
	keywords := TopKeywords("go go go terraform", 10)

	assert.Equal(t, []string{"terraform"}, keywords)
}

func TestTopKeywordsZeroN(t *testing.T) {
	assert.Empty(t, TopKeywords("terraform kubernetes", 0))
}
