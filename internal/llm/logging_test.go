package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/minhvu/hoctot/internal/store"
)

type fakeEventRepo struct {
	events    []store.LLMEventData
	appendErr error
}

func (f *fakeEventRepo) Append(_ context.Context, data store.LLMEventData) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEventRepo) Summary(context.Context) (*store.LLMUsageSummary, error) {
	return &store.LLMUsageSummary{}, nil
}

func (f *fakeEventRepo) UsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 20},
	})
	repo := &fakeEventRepo{}
	p := WithLogging(mock, repo)

	ctx := WithPurpose(t.Context(), "quiz-gen")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatal(err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Purpose != "quiz-gen" {
		t.Errorf("event = %+v", ev)
	}
	if ev.InputTokens != 10 || ev.OutputTokens != 20 {
		t.Errorf("token counts = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if ev.Model != "mock" {
		t.Errorf("model = %q", ev.Model)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	repo := &fakeEventRepo{}
	p := WithLogging(mock, repo)

	_, err := p.Generate(t.Context(), Request{})
	if err == nil {
		t.Fatal("expected the upstream error through")
	}

	if len(repo.events) != 1 {
		t.Fatalf("logged %d events, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Success || ev.ErrorMessage == "" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown without a label", ev.Purpose)
	}
}

func TestLogging_AppendFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &fakeEventRepo{appendErr: errors.New("disk full")}
	p := WithLogging(mock, repo)

	if _, err := p.Generate(t.Context(), Request{}); err != nil {
		t.Errorf("request failed because of the event log: %v", err)
	}
}

func TestPurposeFrom(t *testing.T) {
	if got := PurposeFrom(t.Context()); got != "unknown" {
		t.Errorf("PurposeFrom(bare) = %q", got)
	}
	ctx := WithPurpose(t.Context(), "feedback")
	if got := PurposeFrom(ctx); got != "feedback" {
		t.Errorf("PurposeFrom = %q", got)
	}
}
