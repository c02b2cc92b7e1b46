package credential

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/minhvu/hoctot/internal/llm"
)

func TestWatch_ClearsRejectedKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	kv := testKV(t)
	ctx := t.Context()

	m := Load(ctx, kv, "default")
	if err := m.Set(ctx, "stored-key"); err != nil {
		t.Fatal(err)
	}

	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidCredential{Err: errors.New("api key not valid")},
	})
	p := Watch(mock, m)

	if _, err := p.Generate(ctx, llm.Request{}); err == nil {
		t.Fatal("expected the provider error to pass through")
	}

	if m.State() != StateInvalid {
		t.Errorf("state = %d, want invalid", m.State())
	}
	reloaded := Load(ctx, kv, "default")
	if reloaded.State() != StateMissing {
		t.Errorf("persisted key survived a rejected request: state = %d", reloaded.State())
	}
}

func TestWatch_SuccessAndOtherErrorsLeaveKeyAlone(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	kv := testKV(t)
	ctx := t.Context()

	m := Load(ctx, kv, "default")
	if err := m.Set(ctx, "stored-key"); err != nil {
		t.Fatal(err)
	}

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"ok": true}`)},
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := Watch(mock, m)

	if _, err := p.Generate(ctx, llm.Request{}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, llm.Request{}); err == nil {
		t.Fatal("expected the rate limit error to pass through")
	}

	if m.State() != StatePresent || m.Key() != "stored-key" {
		t.Errorf("key mutated by a non-credential error: state = %d, key = %q", m.State(), m.Key())
	}
}

func TestWatch_Unwrap(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	mock := llm.NewMockProvider()
	m := Load(t.Context(), testKV(t), "default")

	p := Watch(mock, m)
	u, ok := p.(interface{ Unwrap() llm.Provider })
	if !ok {
		t.Fatal("Watch provider must expose Unwrap for capability discovery")
	}
	if u.Unwrap() != llm.Provider(mock) {
		t.Error("Unwrap did not return the inner provider")
	}
}
