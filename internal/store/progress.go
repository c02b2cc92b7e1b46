package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UnlockRepo persists the highest unlocked difficulty per
// (user, grade, subject).
type UnlockRepo struct {
	db *sqlx.DB
}

type unlockRow struct {
	Grade      string `db:"grade"`
	Subject    string `db:"subject"`
	Difficulty string `db:"difficulty"`
}

// Get returns the stored difficulty for the partition, or "" if none.
func (r *UnlockRepo) Get(ctx context.Context, userID, grade, subject string) (string, error) {
	var d string
	err := r.db.GetContext(ctx, &d,
		`SELECT difficulty FROM unlocks WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get unlock: %w", err)
	}
	return d, nil
}

// Set overwrites the stored difficulty for the partition. The unlock
// policy guarantees monotonicity before calling this.
func (r *UnlockRepo) Set(ctx context.Context, userID, grade, subject, difficulty string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO unlocks (user_id, grade, subject, difficulty)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, grade, subject) DO UPDATE SET difficulty = excluded.difficulty`,
		userID, grade, subject, difficulty)
	if err != nil {
		return fmt.Errorf("set unlock: %w", err)
	}
	return nil
}

// All returns every stored grade/subject → difficulty mapping for a user.
func (r *UnlockRepo) All(ctx context.Context, userID string) (map[string]map[string]string, error) {
	var rows []unlockRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT grade, subject, difficulty FROM unlocks WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	out := make(map[string]map[string]string)
	for _, row := range rows {
		if out[row.Grade] == nil {
			out[row.Grade] = make(map[string]string)
		}
		out[row.Grade][row.Subject] = row.Difficulty
	}
	return out, nil
}
