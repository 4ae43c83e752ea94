// Package kv defines the persistent key-value contract backing todo scope
// partitions. Each scope key maps to one JSON blob that is read and written
// wholesale.
package kv

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key has never been written.
var ErrNoKey = errors.New("key not found")

// KV is the host-storage collaborator. Values are JSON-serializable; Get on
// a missing key returns an error wrapping ErrNoKey.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
