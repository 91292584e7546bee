package engine

import (
	"context"
	"errors"
	"sync"
	"time"
)

// memCache is an in-memory Cache for engine tests.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Ping(ctx context.Context) error { return nil }

func (c *memCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Close() error { return nil }

// failingCache errors on every operation.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (c *failingCache) Ping(ctx context.Context) error { return errCacheDown }

func (c *failingCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return errCacheDown
}

func (c *failingCache) Get(ctx context.Context, key string) (string, error) {
	return "", errCacheDown
}

func (c *failingCache) Close() error { return nil }
