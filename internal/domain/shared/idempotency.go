package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks request keys that have already been processed,
// so retried requests do not apply their side effects twice.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a key so the request may be retried, e.g. after the
	// operation it guarded failed to commit.
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
