// Package llm provides centralized LLM configuration and client abstractions.
// It hides the concrete provider behind an interface so callers can swap
// model tiers without touching call sites.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: short rewrites, summaries
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: document tailoring
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		EmbeddingModel: "text-embedding-004",
	}
}

// GetModel returns the model name for a given tier, falling back to the
// standard tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
