package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// WeekPlanRecord is the serialized form of one week of a learning path.
type WeekPlanRecord struct {
	Week      int      `json:"week"`
	Title     string   `json:"title"`
	Topics    []string `json:"topics"`
	Objective string   `json:"objective"`
}

// PathRepo persists one learning path per (user, grade, subject).
// Paths are generated once and deleted wholesale on regeneration.
type PathRepo struct {
	db *sqlx.DB
}

// Save overwrites the learning path for the partition.
func (r *PathRepo) Save(ctx context.Context, userID, grade, subject string, weeks []WeekPlanRecord) error {
	b, err := json.Marshal(weeks)
	if err != nil {
		return fmt.Errorf("marshal learning path: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learning_paths (user_id, grade, subject, weeks, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, grade, subject) DO UPDATE
		 SET weeks = excluded.weeks, created_at = excluded.created_at`,
		userID, grade, subject, string(b), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save learning path: %w", err)
	}
	return nil
}

// Load returns the learning path for the partition, or nil if none.
func (r *PathRepo) Load(ctx context.Context, userID, grade, subject string) ([]WeekPlanRecord, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw,
		`SELECT weeks FROM learning_paths WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learning path: %w", err)
	}

	var weeks []WeekPlanRecord
	if err := json.Unmarshal([]byte(raw), &weeks); err != nil {
		return nil, nil
	}
	return weeks, nil
}

// Delete removes the learning path for the partition.
func (r *PathRepo) Delete(ctx context.Context, userID, grade, subject string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM learning_paths WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if err != nil {
		return fmt.Errorf("delete learning path: %w", err)
	}
	return nil
}
