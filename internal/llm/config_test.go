package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
}

func TestGetModelFallsBackToStandard(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierStandard: "gemini-2.5-flash"},
	}

	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierLite))
}

func TestGetModelUnconfigured(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}

	assert.Empty(t, cfg.GetModel(TierStandard))
}

func TestDefaultConfigHasEmbeddingModel(t *testing.T) {
	assert.Equal(t, "text-embedding-004", DefaultConfig().EmbeddingModel)
}
