package llm

import (
	"context"
	"fmt"

	"github.com/FVTVLIX/Quiz-Whiz/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and request-event logging middleware. events may be nil to disable
// telemetry (tests, one-shot CLI runs without a database).
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	wrapped := Provider(base)
	if events != nil {
		wrapped = WithLogging(wrapped, events)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}
