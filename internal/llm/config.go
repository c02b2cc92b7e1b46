package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds provider configuration.
type Config struct {
	// Provider selects the backend: "gemini", "openai", "anthropic", "mock".
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Retry     RetryConfig

	// Timeout is the budget for a single request including retries.
	Timeout time.Duration
}

// GeminiConfig configures the Gemini backend. Gemini is the primary
// provider: it is the only one serving image and speech generation.
type GeminiConfig struct {
	APIKey      string
	Model       string // default "gemini-flash"
	ImageModel  string // default "gemini-flash-image"
	SpeechModel string // default "gemini-flash-tts"
}

// OpenAIConfig configures the OpenAI backend. BaseURL may point at any
// OpenAI-compatible API.
type OpenAIConfig struct {
	APIKey  string
	Model   string // default "gpt-4o-mini"
	BaseURL string
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey string
	Model  string // default "claude-haiku"
}

// RetryConfig controls retry of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with defaults for every provider.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model:       "gemini-flash",
			ImageModel:  "gemini-flash-image",
			SpeechModel: "gemini-flash-tts",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from HOCTOT_* environment variables,
// falling back to defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("HOCTOT_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("HOCTOT_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("HOCTOT_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("HOCTOT_GEMINI_IMAGE_MODEL"); m != "" {
		cfg.Gemini.ImageModel = m
	}
	if m := os.Getenv("HOCTOT_GEMINI_SPEECH_MODEL"); m != "" {
		cfg.Gemini.SpeechModel = m
	}

	if k := os.Getenv("HOCTOT_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("HOCTOT_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("HOCTOT_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("HOCTOT_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("HOCTOT_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// DiscoverConfig probes the standard API key env vars in priority order
// (Gemini first, since it carries the media features) and returns a Config
// for the first provider whose key is present.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its API key set. Any
// failure is an *ErrConfiguration.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Reason: "HOCTOT_GEMINI_API_KEY is required for the gemini provider"}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Reason: "HOCTOT_OPENAI_API_KEY is required for the openai provider"}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Reason: "HOCTOT_ANTHROPIC_API_KEY is required for the anthropic provider"}
		}
	case "mock":
		// No key needed.
	default:
		return &ErrConfiguration{Reason: fmt.Sprintf("unknown LLM provider: %q", c.Provider)}
	}
	return nil
}
