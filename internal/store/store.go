package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database and hands out repositories.
type Store struct {
	db *sqlx.DB
}

// schema is applied on every Open. All statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		namespace TEXT NOT NULL,
		key       TEXT NOT NULL,
		value     TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    TEXT NOT NULL,
		grade      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		score      INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		topic      TEXT NOT NULL,
		questions  TEXT NOT NULL,
		answers    TEXT NOT NULL,
		feedback   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_partition
		ON history (user_id, grade, subject, created_at)`,
	`CREATE TABLE IF NOT EXISTS decks (
		user_id    TEXT NOT NULL,
		grade      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		cards      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, grade, subject)
	)`,
	`CREATE TABLE IF NOT EXISTS unlocks (
		user_id    TEXT NOT NULL,
		grade      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		PRIMARY KEY (user_id, grade, subject)
	)`,
	`CREATE TABLE IF NOT EXISTS learning_paths (
		user_id    TEXT NOT NULL,
		grade      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		weeks      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, grade, subject)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    TIMESTAMP NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// DB returns the underlying sqlx handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// KV returns the key/value repository.
func (s *Store) KV() *KVRepo { return &KVRepo{db: s.db} }

// History returns the quiz history repository.
func (s *Store) History() *HistoryRepo { return &HistoryRepo{db: s.db} }

// Decks returns the flashcard deck repository.
func (s *Store) Decks() *DeckRepo { return &DeckRepo{db: s.db} }

// Unlocks returns the difficulty unlock repository.
func (s *Store) Unlocks() *UnlockRepo { return &UnlockRepo{db: s.db} }

// Paths returns the learning path repository.
func (s *Store) Paths() *PathRepo { return &PathRepo{db: s.db} }

// LLMEvents returns the model request event repository.
func (s *Store) LLMEvents() LLMEventRepo { return &llmEventRepo{db: s.db} }

// Reset deletes all data belonging to one user: settings, history,
// decks, unlocks and learning paths. The request event log is kept.
func (s *Store) Reset(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM kv WHERE namespace = ? OR namespace LIKE ? || '/%'`,
		`DELETE FROM history WHERE user_id = ?`,
		`DELETE FROM decks WHERE user_id = ?`,
		`DELETE FROM unlocks WHERE user_id = ?`,
		`DELETE FROM learning_paths WHERE user_id = ?`,
	}
	for i, stmt := range statements {
		args := []any{userID}
		if i == 0 {
			args = []any{userID, userID}
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("reset user data: %w", err)
		}
	}
	return tx.Commit()
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. HOCTOT_DB environment variable
// 2. $XDG_DATA_HOME/hoctot/hoctot.db
// 3. ~/.local/share/hoctot/hoctot.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("HOCTOT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "hoctot", "hoctot.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
