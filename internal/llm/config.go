package llm

// Provider selects the completion backend implementation.
type Provider string

// Supported completion providers
const (
	// ProviderOllama is a local or self-hosted chat-completion server
	// speaking the Ollama wire format.
	ProviderOllama Provider = "ollama"
	// ProviderAnthropic is the Anthropic messages API.
	ProviderAnthropic Provider = "anthropic"
	// ProviderGemini is the Google Gemini API.
	ProviderGemini Provider = "gemini"
)

// Defaults for completion requests. The transform prompt fits comfortably in
// 1500 output tokens; the low temperature keeps rubric output consistent.
const (
	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.1
	DefaultOllamaURL   = "http://localhost:11434"
)

// Config holds completion-backend settings. Credentials are read at
// construction time, not cached process-wide.
type Config struct {
	Provider    Provider
	BaseURL     string
	Model       string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

// withDefaults fills zero values in place.
func (c *Config) withDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOllama
	}
	if c.BaseURL == "" && c.Provider == ProviderOllama {
		c.BaseURL = DefaultOllamaURL
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
}
