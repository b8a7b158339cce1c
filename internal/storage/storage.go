package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("key not found")

// KV is a synchronous key-value store holding JSON text documents.
// There is no atomicity across keys: each Set/Delete stands alone.
//
//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=storage
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Read unmarshals the document stored under key into a value of type T.
// A missing or corrupt document yields def; read problems are recovered
// here and never surfaced to the caller.
func Read[T any](ctx context.Context, kv KV, key string, def T) T {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("reading stored document", "key", key, "error", err)
		}

		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		slog.Warn("ignoring corrupt stored document", "key", key, "error", err)
		return def
	}

	return v
}

// Write marshals v and stores it under key, replacing any prior document.
func Write(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding document for %q: %w", key, err)
	}

	if err := kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}

	return nil
}
