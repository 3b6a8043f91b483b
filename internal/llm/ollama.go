package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ollamaTimeout covers a full rubric generation on modest hardware.
const ollamaTimeout = 120 * time.Second

// OllamaClient talks to an Ollama-compatible chat endpoint.
type OllamaClient struct {
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewOllamaClient creates a client for an Ollama-compatible backend.
func NewOllamaClient(cfg Config) *OllamaClient {
	return &OllamaClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: ollamaTimeout,
		},
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

// ollamaChatResponse covers both the /api/chat envelope (message.content)
// and the older /api/generate envelope (response).
type ollamaChatResponse struct {
	Message  *ollamaMessage `json:"message,omitempty"`
	Response string         `json:"response,omitempty"`
}

// Complete sends a single-turn chat request and returns the raw reply text.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaChatRequest{
		Model: c.model,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Options: ollamaOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ErrCompletionUnavailable{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ErrCompletionUnavailable{Status: resp.StatusCode, Body: Snippet(string(body))}
	}

	var envelope ollamaChatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &ErrInvalidCompletionEnvelope{Snippet: Snippet(string(body))}
	}

	switch {
	case envelope.Message != nil && envelope.Message.Content != "":
		return envelope.Message.Content, nil
	case envelope.Response != "":
		return envelope.Response, nil
	default:
		return "", &ErrInvalidCompletionEnvelope{Snippet: Snippet(string(body))}
	}
}

// Model returns the configured model name.
func (c *OllamaClient) Model() string {
	return c.model
}

// Close is a no-op; the client holds no persistent resources.
func (c *OllamaClient) Close() error {
	return nil
}
