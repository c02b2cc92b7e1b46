package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LLMEventData captures one model API call for the local event log.
type LLMEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsageSummary aggregates the event log for display.
type LLMUsageSummary struct {
	Requests     int   `db:"requests"`
	Failures     int   `db:"failures"`
	InputTokens  int64 `db:"input_tokens"`
	OutputTokens int64 `db:"output_tokens"`
}

// LLMPurposeUsage aggregates the event log for one request purpose.
type LLMPurposeUsage struct {
	Purpose      string `db:"purpose"`
	Calls        int    `db:"calls"`
	InputTokens  int64  `db:"input_tokens"`
	OutputTokens int64  `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// LLMEventRepo provides append access to the model request log.
type LLMEventRepo interface {
	// Append records an API call event.
	Append(ctx context.Context, data LLMEventData) error

	// Summary aggregates all recorded events.
	Summary(ctx context.Context) (*LLMUsageSummary, error)

	// UsageByPurpose aggregates events per request purpose.
	UsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
}

type llmEventRepo struct {
	db *sqlx.DB
}

func (r *llmEventRepo) Append(ctx context.Context, data LLMEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events (created_at, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, success, data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *llmEventRepo) Summary(ctx context.Context) (*LLMUsageSummary, error) {
	var s LLMUsageSummary
	err := r.db.GetContext(ctx, &s,
		`SELECT COUNT(*) AS requests,
			COUNT(*) - COALESCE(SUM(success), 0) AS failures,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens
		 FROM llm_events`)
	if err != nil {
		return nil, fmt.Errorf("summarize llm events: %w", err)
	}
	return &s, nil
}

func (r *llmEventRepo) UsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	var usage []LLMPurposeUsage
	err := r.db.SelectContext(ctx, &usage,
		`SELECT purpose,
			COUNT(*) AS calls,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens,
			COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0) AS avg_latency_ms
		 FROM llm_events
		 GROUP BY purpose
		 ORDER BY calls DESC`)
	if err != nil {
		return nil, fmt.Errorf("summarize llm events by purpose: %w", err)
	}
	return usage, nil
}
