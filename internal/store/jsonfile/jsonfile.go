// Package jsonfile implements kv.KV with one JSON file per key, mirroring
// the host profile storage: each scope partition is a single blob replaced
// atomically on write.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/taskdock/taskdock/internal/core/kv"
)

const fileExt = ".json"

// Store is a directory of <escaped-key>.json files.
type Store struct {
	dir string
	mu  sync.RWMutex
}

var _ kv.KV = (*Store)(nil)

// New creates the storage directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get reads and unmarshals the value for key into dest.
// Returns an error wrapping kv.ErrNoKey if the key was never written.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("get %q: %w", key, kv.ErrNoKey)
		}
		return fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set marshals value and replaces the key's file atomically via a temp file
// rename, so a crash mid-write never leaves a truncated partition.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("set %q marshal: %w", key, err)
	}

	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes the key's file. Missing keys are a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Has reports whether the key exists.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("has %q: %w", key, err)
	}
	return true, nil
}

// ListKeys returns all stored keys in sorted order.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// path maps a key to its file. Keys are workspace folder paths or "global",
// so they are escaped to stay within a flat directory.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}
