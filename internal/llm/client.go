package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over completion backends. Implementations send a
// single prompt and return the raw completion text; JSON recovery and shape
// validation happen in the callers.
type Client interface {
	// Complete sends a prompt to the backend and returns the raw text reply.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model returns the configured model name (for logging).
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a completion client for the configured provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	cfg.withDefaults()

	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
