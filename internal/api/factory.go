package api

import (
	"fmt"
	"time"

	"github.com/diogo/chatbot/internal/config"
)

// NewFromConfig builds the Completer selected by cfg.Provider.
func NewFromConfig(cfg config.Config, extra ...ClientOption) (Completer, error) {
	opts := []ClientOption{
		WithAPIKey(cfg.APIKey),
		WithBaseURL(cfg.BaseURL),
		WithTemperature(cfg.Temperature),
		WithMaxTokens(cfg.MaxTokens),
	}
	if cfg.Model != "" {
		opts = append(opts, WithModel(cfg.Model))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(time.Duration(cfg.Timeout)*time.Second))
	}
	opts = append(opts, extra...)

	switch cfg.Provider {
	case "", config.ProviderOpenAI:
		return NewOpenAIClient(opts...), nil
	case config.ProviderHTTP:
		return NewHTTPClient(cfg.HTTP, opts...)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
