package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// QuestionRecord is the serialized form of a quiz question as stored in
// a history entry. Domain packages convert to and from their own types.
type QuestionRecord struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// HistoryEntry is one completed quiz attempt. Entries are append-only
// except the tutor feedback, which resolves asynchronously and is
// backfilled onto the row once it arrives.
type HistoryEntry struct {
	ID         int64             `json:"id"`
	Date       time.Time         `json:"date"`
	Score      int               `json:"score"`
	Difficulty string            `json:"difficulty"`
	Topic      string            `json:"topic"`
	Questions  []QuestionRecord  `json:"questions"`
	Answers    map[string]string `json:"answers"`
	Feedback   string            `json:"tutorFeedback"`
}

// HistoryRepo provides append-only access to quiz history, partitioned
// by (user, grade, subject).
type HistoryRepo struct {
	db *sqlx.DB
}

type historyRow struct {
	ID         int64     `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	Score      int       `db:"score"`
	Difficulty string    `db:"difficulty"`
	Topic      string    `db:"topic"`
	Questions  string    `db:"questions"`
	Answers    string    `db:"answers"`
	Feedback   string    `db:"feedback"`
}

// Append stores a new history entry and returns its row ID. The
// entry's ID is ignored on input.
func (r *HistoryRepo) Append(ctx context.Context, userID, grade, subject string, e HistoryEntry) (int64, error) {
	questions, err := json.Marshal(e.Questions)
	if err != nil {
		return 0, fmt.Errorf("marshal questions: %w", err)
	}
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		return 0, fmt.Errorf("marshal answers: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO history (user_id, grade, subject, created_at, score, difficulty, topic, questions, answers, feedback)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, grade, subject, e.Date, e.Score, e.Difficulty, e.Topic,
		string(questions), string(answers), e.Feedback)
	if err != nil {
		return 0, fmt.Errorf("append history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append history: %w", err)
	}
	return id, nil
}

// SetFeedback fills in the tutor feedback on an existing entry.
func (r *HistoryRepo) SetFeedback(ctx context.Context, id int64, feedback string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE history SET feedback = ? WHERE id = ?`, feedback, id)
	if err != nil {
		return fmt.Errorf("set history feedback: %w", err)
	}
	return nil
}

// List returns entries for the partition, most recent first. limit <= 0
// means no limit.
func (r *HistoryRepo) List(ctx context.Context, userID, grade, subject string, limit int) ([]HistoryEntry, error) {
	query := `SELECT id, created_at, score, difficulty, topic, questions, answers, feedback
		FROM history WHERE user_id = ? AND grade = ? AND subject = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID, grade, subject}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		e := HistoryEntry{
			ID:         row.ID,
			Date:       row.CreatedAt,
			Score:      row.Score,
			Difficulty: row.Difficulty,
			Topic:      row.Topic,
			Feedback:   row.Feedback,
		}
		// A corrupt payload degrades to an entry without detail rather
		// than failing the whole listing.
		_ = json.Unmarshal([]byte(row.Questions), &e.Questions)
		_ = json.Unmarshal([]byte(row.Answers), &e.Answers)
		entries = append(entries, e)
	}
	return entries, nil
}

// Count returns the number of entries in the partition.
func (r *HistoryRepo) Count(ctx context.Context, userID, grade, subject string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM history WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}
