package credential

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/minhvu/hoctot/internal/llm"
	"github.com/minhvu/hoctot/internal/store"
)

func testKV(t *testing.T) *store.KVRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s.KV()
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	m := Load(t.Context(), testKV(t), "default")
	if m.State() != StateMissing {
		t.Errorf("state = %d, want missing", m.State())
	}
	if m.Key() != "" {
		t.Errorf("key = %q, want empty", m.Key())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  env-key  ")
	m := Load(t.Context(), testKV(t), "default")
	if m.State() != StatePresent || m.Key() != "env-key" {
		t.Errorf("state = %d, key = %q", m.State(), m.Key())
	}
}

func TestSetAndReload(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	kv := testKV(t)
	ctx := t.Context()

	m := Load(ctx, kv, "default")
	if err := m.Set(ctx, "stored-key"); err != nil {
		t.Fatal(err)
	}
	if m.State() != StatePresent || m.Key() != "stored-key" {
		t.Errorf("after set: state = %d, key = %q", m.State(), m.Key())
	}

	// Persisted key survives a fresh Load and wins over the env.
	t.Setenv("GEMINI_API_KEY", "env-key")
	m2 := Load(ctx, kv, "default")
	if m2.Key() != "stored-key" {
		t.Errorf("reloaded key = %q, want the persisted one", m2.Key())
	}
}

func TestSet_EmptyKeyRejected(t *testing.T) {
	m := Load(t.Context(), testKV(t), "default")
	if err := m.Set(t.Context(), "   "); err == nil {
		t.Fatal("expected an error for a blank key")
	}
}

func TestObserve_ClearsRejectedKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	kv := testKV(t)
	ctx := t.Context()

	m := Load(ctx, kv, "default")
	if err := m.Set(ctx, "bad-key"); err != nil {
		t.Fatal(err)
	}

	cleared := m.Observe(ctx, &llm.ErrInvalidCredential{Err: errors.New("api key not valid")})
	if !cleared {
		t.Fatal("Observe did not recognize the credential error")
	}
	if m.State() != StateInvalid || m.Key() != "" {
		t.Errorf("after observe: state = %d, key = %q", m.State(), m.Key())
	}

	// The persisted copy is gone too.
	m2 := Load(ctx, kv, "default")
	if m2.State() != StateMissing {
		t.Errorf("reloaded state = %d, want missing", m2.State())
	}
}

func TestObserve_IgnoresOtherErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	kv := testKV(t)
	ctx := t.Context()

	m := Load(ctx, kv, "default")
	if err := m.Set(ctx, "good-key"); err != nil {
		t.Fatal(err)
	}

	if m.Observe(ctx, &llm.ErrProviderUnavailable{}) {
		t.Error("a transient error should not clear the key")
	}
	if m.State() != StatePresent || m.Key() != "good-key" {
		t.Errorf("state = %d, key = %q", m.State(), m.Key())
	}
}
