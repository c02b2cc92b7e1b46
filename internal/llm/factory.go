package llm

import (
	"context"
	"fmt"

	"github.com/minhvu/hoctot/internal/store"
)

// NewProvider builds a Provider from configuration, wrapped with the
// retry and event-logging middleware (caller → retry → logging → base).
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, events)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv builds a Provider from HOCTOT_* env vars, falling
// back to key discovery when no provider is configured explicitly.
func NewProviderFromEnv(ctx context.Context, events store.LLMEventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: set HOCTOT_LLM_PROVIDER or a provider API key")
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
