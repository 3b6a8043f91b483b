// Package config provides configuration loading and validation for the
// skill builder. All settings come from the environment; credentials are
// read at call time rather than cached, so rotation needs no restart.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/peopleprotocol/skill-builder/internal/llm"
)

// Defaults for optional settings.
const (
	DefaultPort     = 8080
	DefaultProvider = string(llm.ProviderOllama)
)

// Config holds the runtime configuration for the server and CLI.
type Config struct {
	// Lightcast taxonomy credentials. Validated lazily: browsing-only
	// sessions against a configured completion backend never need them
	// until the first gateway call.
	LightcastClientID     string
	LightcastClientSecret string

	// Completion backend.
	CompletionProvider string `validate:"oneof=ollama anthropic gemini"`
	CompletionBaseURL  string `validate:"omitempty,url"`
	CompletionModel    string
	AnthropicAPIKey    string
	GeminiAPIKey       string

	// Server.
	Port int `validate:"gt=0,lte=65535"`

	// EnforceLevelMinimums rejects rubrics where any level has fewer than
	// two statements instead of passing them through.
	EnforceLevelMinimums bool
}

// FromEnv reads configuration from the environment and validates it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LightcastClientID:     os.Getenv("LIGHTCAST_CLIENT_ID"),
		LightcastClientSecret: os.Getenv("LIGHTCAST_CLIENT_SECRET"),
		CompletionProvider:    envOr("COMPLETION_PROVIDER", DefaultProvider),
		CompletionBaseURL:     os.Getenv("COMPLETION_BASE_URL"),
		CompletionModel:       os.Getenv("COMPLETION_MODEL"),
		AnthropicAPIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		Port:                  DefaultPort,
		EnforceLevelMinimums:  true,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT must be an integer, got %q", portStr)
		}
		cfg.Port = port
	}

	if enforceStr := os.Getenv("ENFORCE_LEVEL_MINIMUMS"); enforceStr != "" {
		enforce, err := strconv.ParseBool(enforceStr)
		if err != nil {
			return nil, fmt.Errorf("config error: ENFORCE_LEVEL_MINIMUMS must be a boolean, got %q", enforceStr)
		}
		cfg.EnforceLevelMinimums = enforce
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch llm.Provider(c.CompletionProvider) {
	case llm.ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("config error: ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case llm.ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required for the gemini provider")
		}
	}
	return nil
}

// CompletionConfig maps the configuration onto the llm client settings.
func (c *Config) CompletionConfig() llm.Config {
	cfg := llm.Config{
		Provider: llm.Provider(c.CompletionProvider),
		BaseURL:  c.CompletionBaseURL,
		Model:    c.CompletionModel,
	}
	switch cfg.Provider {
	case llm.ProviderAnthropic:
		cfg.APIKey = c.AnthropicAPIKey
	case llm.ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
