package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds completion provider configuration.
type Config struct {
	// Provider selects the backing service.
	// Values: "openai", "anthropic", "gemini", "mock".
	Provider string

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds a single completion request including retries.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL points the
// same provider at OpenRouter or any other OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku-4-5-20251001",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from QUIZWHIZ_* environment variables,
// falling back to defaults for unset values. When QUIZWHIZ_LLM_PROVIDER is
// unset, the provider is discovered from the standard key variables in
// priority order: OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if k := os.Getenv("QUIZWHIZ_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	} else {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if m := os.Getenv("QUIZWHIZ_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZWHIZ_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZWHIZ_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	} else {
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if m := os.Getenv("QUIZWHIZ_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("QUIZWHIZ_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	} else {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if m := os.Getenv("QUIZWHIZ_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if p := os.Getenv("QUIZWHIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else {
		cfg.Provider = discoverProvider(cfg)
	}

	return cfg
}

// discoverProvider picks the first provider whose API key is configured.
// Selection is by which key is present, never by inspecting key contents.
func discoverProvider(cfg Config) string {
	switch {
	case cfg.OpenAI.APIKey != "":
		return "openai"
	case cfg.Anthropic.APIKey != "":
		return "anthropic"
	case cfg.Gemini.APIKey != "":
		return "gemini"
	default:
		return cfg.Provider
	}
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown completion provider: %q", c.Provider)
	}
	return nil
}
