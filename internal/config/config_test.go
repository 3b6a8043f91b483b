package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleprotocol/skill-builder/internal/llm"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LIGHTCAST_CLIENT_ID", "id")
	t.Setenv("LIGHTCAST_CLIENT_SECRET", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "ollama", cfg.CompletionProvider)
	assert.True(t, cfg.EnforceLevelMinimums)
}

func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_EnforcementToggle(t *testing.T) {
	t.Setenv("ENFORCE_LEVEL_MINIMUMS", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.EnforceLevelMinimums)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{CompletionProvider: "watson", Port: 8080}

	assert.Error(t, cfg.Validate())
}

func TestValidate_AnthropicRequiresKey(t *testing.T) {
	cfg := &Config{CompletionProvider: "anthropic", Port: 8080}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestCompletionConfig_SelectsProviderKey(t *testing.T) {
	cfg := &Config{
		CompletionProvider: "gemini",
		CompletionModel:    "gemini-2.5-flash",
		GeminiAPIKey:       "g-key",
		AnthropicAPIKey:    "a-key",
		Port:               8080,
	}

	llmCfg := cfg.CompletionConfig()
	assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
	assert.Equal(t, "g-key", llmCfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", llmCfg.Model)
}
