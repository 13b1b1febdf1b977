package cache

import (
	"context"
	"time"
)

// NullCache discards everything: every Get is a miss and every layout is
// recomputed. It backs the --no-cache flag and keeps pipeline code free of
// nil checks when caching is disabled.
type NullCache struct{}

// NewNullCache returns the disabled-cache backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
