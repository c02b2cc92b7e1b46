package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/minhvu/hoctot/internal/store"
)

// LoggingProvider records every model request as an event in the local
// store. A failed write warns on stderr but never fails the request.
type LoggingProvider struct {
	inner  Provider
	events store.LLMEventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, events store.LLMEventRepo) Provider {
	return &LoggingProvider{inner: p, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMEventData{
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	if l.events != nil {
		if logErr := l.events.Append(ctx, data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log LLM event: %v\n", logErr)
		}
	}

	return resp, err
}

// Unwrap exposes the wrapped provider.
func (l *LoggingProvider) Unwrap() Provider { return l.inner }

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
