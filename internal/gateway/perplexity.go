package gateway

import "strings"

type PerplexityConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Recency string
}

// NewPerplexityProvider builds a search-grounded OpenAI-compatible provider
// restricted to recent sources.
func NewPerplexityProvider(cfg PerplexityConfig) (*OpenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Provider: Perplexity}
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-sonar-small-128k-online"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Recency == "" {
		cfg.Recency = "day"
	}
	return newChatProvider(Perplexity, OpenAIConfig{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Temperature: 0.2,
		MaxTokens:   500,
	}, cfg.Recency), nil
}
