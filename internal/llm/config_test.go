package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mut     func(*Config)
		wantErr bool
	}{
		{"gemini with key", func(c *Config) { c.Gemini.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) {}, true},
		{"openai with key", func(c *Config) { c.Provider = "openai"; c.OpenAI.APIKey = "k" }, false},
		{"openai without key", func(c *Config) { c.Provider = "openai" }, true},
		{"anthropic with key", func(c *Config) { c.Provider = "anthropic"; c.Anthropic.APIKey = "k" }, false},
		{"anthropic without key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "llama" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HOCTOT_LLM_PROVIDER", "openai")
	t.Setenv("HOCTOT_OPENAI_API_KEY", "sk-test")
	t.Setenv("HOCTOT_OPENAI_MODEL", "gpt-custom")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-custom" {
		t.Errorf("openai config = %+v", cfg.OpenAI)
	}
	// Unset values keep defaults.
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("gemini model default = %q", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("retry attempts default = %d", cfg.Retry.MaxAttempts)
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("discovery without keys should fail")
	}

	t.Setenv("ANTHROPIC_API_KEY", "ant-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic discovery, got %+v, %v", cfg, ok)
	}

	// Gemini takes priority over the rest.
	t.Setenv("GEMINI_API_KEY", "gem-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "gem-key" {
		t.Fatalf("expected gemini discovery, got %+v, %v", cfg, ok)
	}
}

func TestValidateError_NamesEnvVar(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "HOCTOT_GEMINI_API_KEY") {
		t.Errorf("error should name the missing env var, got %v", err)
	}
}

func TestValidateError_Typed(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		{Provider: "what"},
	} {
		err := cfg.Validate()
		var cfgErr *ErrConfiguration
		if !errors.As(err, &cfgErr) {
			t.Errorf("Validate() for provider %q = %v, want *ErrConfiguration", cfg.Provider, err)
		}
	}
}

func TestLooksLikeBadCredential(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"googleapi: Error 400: API key not valid", true},
		{"API_KEY_INVALID: bad key", true},
		{"Incorrect API key provided", true},
		{"authentication_error: invalid x-api-key", true},
		{"connection refused", false},
		{"rate limit exceeded", false},
	}
	for _, tt := range tests {
		if got := looksLikeBadCredential(errStr(tt.msg)); got != tt.want {
			t.Errorf("looksLikeBadCredential(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
	if looksLikeBadCredential(nil) {
		t.Error("nil error should not look like a bad credential")
	}
}

type errStr string

func (e errStr) Error() string { return string(e) }
