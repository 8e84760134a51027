package port

import (
	"context"
	"time"
)

type CacheRepository interface {
	// Generation returns the current cache generation. Read it before
	// loading the data an entry is built from.
	Generation(ctx context.Context) (int64, error)

	// Get returns ok=false on a miss
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores a value only if gen is still the current generation.
	// A stale write is dropped without error.
	Set(ctx context.Context, gen int64, key string, value []byte, ttl time.Duration) error

	// Invalidate drops every cached entry by advancing the generation
	Invalidate(ctx context.Context) error
}
