package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient sends prompts to the Anthropic messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	cfg    Config
}

// NewAnthropicClient creates an Anthropic-backed completion client.
func NewAnthropicClient(cfg Config) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
		cfg:    cfg,
	}, nil
}

// Complete sends a single user message and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &ErrCompletionUnavailable{Status: 0, Body: err.Error()}
	}

	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			return text.Text, nil
		}
	}

	return "", &ErrInvalidCompletionEnvelope{Snippet: "no text block in messages response"}
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

// Close is a no-op; the SDK client holds no persistent resources.
func (c *AnthropicClient) Close() error {
	return nil
}
