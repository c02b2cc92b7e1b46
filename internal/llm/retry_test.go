package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{"ok": true}`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(t.Context(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Content) != `{"ok": true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("made %d calls, want 2", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(t.Context(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("made %d calls, want 3", mock.CallCount())
	}
}

func TestRetry_NonRetryableErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid credential", &ErrInvalidCredential{Err: errors.New("api key not valid")}},
		{"content blocked", &ErrContentBlocked{Reason: "safety"}},
		{"max tokens", &ErrMaxTokensExceeded{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(
				MockResponse{Err: tt.err},
				MockResponse{Content: json.RawMessage(`{}`)},
			)
			p := WithRetry(mock, fastRetryConfig())

			_, err := p.Generate(t.Context(), Request{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if mock.CallCount() != 1 {
				t.Errorf("made %d calls, want 1 (no retry)", mock.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("schema mismatch")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("schema mismatch")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(t.Context(), Request{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("made %d calls, want 2 (one regeneration only)", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Hour,
		MaxWait:     time.Hour,
		Multiplier:  2.0,
	})

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_Unwrap(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mock, fastRetryConfig())

	unwrapper, ok := p.(interface{ Unwrap() Provider })
	if !ok {
		t.Fatal("retry provider should expose Unwrap")
	}
	if unwrapper.Unwrap() != Provider(mock) {
		t.Error("Unwrap should return the wrapped provider")
	}
}
