package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInternal    = errors.New("internal storage error")
	ErrWriteFailed = errors.New("storage write failed")
	ErrKeyNotFound = errors.New("key not found")
)

// KV is the durable key-value surface the application persists through.
// Values are opaque byte payloads; the workouts persister stores a single
// JSON array under one key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func InternalError(err error) error {
	return errors.Join(fmt.Errorf("internal storage error: %w", err), ErrInternal)
}

func WriteError(err error) error {
	return errors.Join(fmt.Errorf("storage write failed: %w", err), ErrWriteFailed)
}
