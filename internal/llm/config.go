// Package llm provides centralized LLM configuration and client abstractions.
// Every external text-understanding call in the pipeline goes through the Client interface.
package llm

import "context"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: chunk summaries, clarification questions, logo reading
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: criteria, company profile, gap classification
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form writing: proposal sections
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps extraction output stable across runs.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierLite]; ok && model != "" {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

type temperatureKey struct{}

// WithTemperature returns a context whose calls use t instead of the configured temperature.
func WithTemperature(ctx context.Context, t float32) context.Context {
	return context.WithValue(ctx, temperatureKey{}, t)
}

func temperatureFrom(ctx context.Context, fallback float32) float32 {
	if t, ok := ctx.Value(temperatureKey{}).(float32); ok && t > 0 {
		return t
	}
	return fallback
}
