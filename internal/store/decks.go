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

// CardRecord is the serialized form of a flashcard. Order in the slice
// is the user's chosen order and is significant.
type CardRecord struct {
	Front  string `json:"front"`
	Back   string `json:"back"`
	Status string `json:"status"`
}

// DeckRepo persists one flashcard deck per (user, grade, subject).
type DeckRepo struct {
	db *sqlx.DB
}

// Save overwrites the deck for the partition.
func (r *DeckRepo) Save(ctx context.Context, userID, grade, subject string, cards []CardRecord) error {
	b, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshal deck: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO decks (user_id, grade, subject, cards, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, grade, subject) DO UPDATE
		 SET cards = excluded.cards, updated_at = excluded.updated_at`,
		userID, grade, subject, string(b), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// Load returns the deck for the partition. A missing or corrupt deck
// returns an empty slice.
func (r *DeckRepo) Load(ctx context.Context, userID, grade, subject string) ([]CardRecord, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw,
		`SELECT cards FROM decks WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	var cards []CardRecord
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, nil
	}
	return cards, nil
}

// Delete removes the deck for the partition.
func (r *DeckRepo) Delete(ctx context.Context, userID, grade, subject string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM decks WHERE user_id = ? AND grade = ? AND subject = ?`,
		userID, grade, subject)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return nil
}
