package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// KVRepo is the namespaced key/value layer holding settings and other
// small per-user state as JSON strings.
type KVRepo struct {
	db *sqlx.DB
}

// Namespace builds the storage namespace for a user, optionally scoped
// to a grade and subject.
func Namespace(userID string, parts ...string) string {
	all := append([]string{userID}, parts...)
	return strings.Join(all, "/")
}

// SetJSON serializes value and stores it under (namespace, key),
// overwriting any previous value.
func (r *KVRepo) SetJSON(ctx context.Context, namespace, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", namespace, key, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		namespace, key, string(b))
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// GetJSON loads the value under (namespace, key) into dst. A missing or
// corrupt value leaves dst untouched and returns false: callers pass in
// their default and keep it on fallback. The error return covers only
// database failures.
func (r *KVRepo) GetJSON(ctx context.Context, namespace, key string, dst any) (bool, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw,
		`SELECT value FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		// Corrupt value: fall back to the caller's default.
		return false, nil
	}
	return true, nil
}

// Remove deletes the value under (namespace, key). Removing a missing
// key is not an error.
func (r *KVRepo) Remove(ctx context.Context, namespace, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", namespace, key, err)
	}
	return nil
}
