// Package credential manages the API key lifecycle as an explicit state
// object: loaded from the store at startup, cleared when the upstream
// service rejects it, re-entered by the user. No other error in the app
// mutates persisted state as a side effect.
package credential

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/minhvu/hoctot/internal/llm"
	"github.com/minhvu/hoctot/internal/store"
)

// State is the credential lifecycle state.
type State int

const (
	// StateMissing: no key configured; the user must enter one.
	StateMissing State = iota

	// StatePresent: a key is loaded and assumed valid.
	StatePresent

	// StateInvalid: the service rejected the key; the persisted copy
	// has been cleared and re-entry is required.
	StateInvalid
)

const (
	namespaceKey = "credential"
	storeKey     = "api-key"
)

// Manager holds the current credential and its persistence.
type Manager struct {
	kv     *store.KVRepo
	userID string

	state State
	key   string
}

// Load initializes a Manager from the persisted key, falling back to
// the environment.
func Load(ctx context.Context, kv *store.KVRepo, userID string) *Manager {
	m := &Manager{kv: kv, userID: userID}

	var key string
	if ok, _ := kv.GetJSON(ctx, store.Namespace(userID, namespaceKey), storeKey, &key); ok && key != "" {
		m.state = StatePresent
		m.key = key
		return m
	}
	if key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		m.state = StatePresent
		m.key = key
		return m
	}

	m.state = StateMissing
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// Key returns the current key, or "" when none is usable.
func (m *Manager) Key() string {
	if m.state != StatePresent {
		return ""
	}
	return m.key
}

// Set stores a newly entered key and moves to StatePresent.
func (m *Manager) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty API key")
	}
	if err := m.kv.SetJSON(ctx, store.Namespace(m.userID, namespaceKey), storeKey, key); err != nil {
		return err
	}
	m.state = StatePresent
	m.key = key
	return nil
}

// Observe inspects an operation error. When it identifies a rejected
// key, the persisted copy is cleared and the state moves to
// StateInvalid so the UI forces re-entry. Returns true if it did.
func (m *Manager) Observe(ctx context.Context, err error) bool {
	var badKey *llm.ErrInvalidCredential
	if !errors.As(err, &badKey) {
		return false
	}

	m.state = StateInvalid
	m.key = ""
	_ = m.kv.Remove(ctx, store.Namespace(m.userID, namespaceKey), storeKey)
	return true
}
