// Package storage persists analysis history and progress flags as whole blobs in named slots.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// HistoryKey is the slot holding the serialized history list
const HistoryKey = "placement-readiness-history"

// Slot is a key-value store of opaque blobs. Every Put overwrites the whole value.
type Slot interface {
	// Get returns nil with no error when the key was never written
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// validateKey rejects keys that cannot safely be used as file names or table keys
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty slot key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid slot key %q", key)
	}
	return nil
}
