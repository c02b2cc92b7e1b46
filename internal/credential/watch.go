package credential

import (
	"context"

	"github.com/minhvu/hoctot/internal/llm"
)

// watchProvider funnels every request outcome through the manager so a
// rejected key clears its persisted copy no matter which feature made
// the call.
type watchProvider struct {
	inner llm.Provider
	mgr   *Manager
}

// Watch wraps a provider with credential observation. It sits outermost
// in the middleware chain; Unwrap keeps capability discovery working.
func Watch(p llm.Provider, m *Manager) llm.Provider {
	return &watchProvider{inner: p, mgr: m}
}

func (w *watchProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := w.inner.Generate(ctx, req)
	if err != nil {
		w.mgr.Observe(ctx, err)
	}
	return resp, err
}

func (w *watchProvider) ModelID() string {
	return w.inner.ModelID()
}

func (w *watchProvider) Unwrap() llm.Provider {
	return w.inner
}
