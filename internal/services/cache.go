package services

import (
	"context"
	"time"
)

// Cache is the optional read-through store for generated scene images.
// Saved games are deliberately not persisted anywhere; the cache only
// holds image payloads keyed by prompt hash, so losing it costs one
// regeneration.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a key-value pair with optional expiration
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a value by key; a missing key returns "" with no error
	Get(ctx context.Context, key string) (string, error)

	// Close closes the cache connection
	Close() error
}
