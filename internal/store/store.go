// Package store persists planner state behind a small key-value contract.
// Values are JSON documents; every read is validated before use and falls
// back to a default when the stored shape is wrong.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key has no value.
	ErrNotFound = errors.New("store: key not found")

	// ErrEmptyKey is returned for operations on the empty key.
	ErrEmptyKey = errors.New("store: key cannot be empty")
)

// Store is a flat key-value store of serialized values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
