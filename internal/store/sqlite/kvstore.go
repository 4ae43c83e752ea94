package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/taskdock/taskdock/internal/core/kv"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNoKey if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	var value []byte
	err := s.db.conn.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("kv get %q: %w", key, kv.ErrNoKey)
		}
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	if err := json.Unmarshal(value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value, replacing any previous value for the key.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Missing keys are a no-op.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has reports whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	var count int64
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store WHERE key = ?`, key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("kv list keys scan: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}
