// Package cache stores generated mazes and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     sharded by the first two hex digits of the key hash. Used by the CLI.
//   - [RedisCache]: a shared cache for the HTTP server, backed by go-redis.
//   - [NullCache]: never stores anything (--no-cache).
//
// # Keys
//
// A [Keyer] derives keys from everything that influences the cached value.
// Only generation runs with an explicit seed are cacheable: without one the
// output is random by definition.
//
//	key := keyer.MazeKey(cache.MazeKeyOpts{Width: 20, Height: 10, Seed: 42})
//	if err := cache.GetJSON(ctx, c, key, &m); errors.Is(err, cache.ErrCacheMiss) {
//	    // generate and cache.SetJSON(ctx, c, key, m, ttl)
//	}
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTTL is how long entries live when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired and corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// GetJSON decodes the entry for key into v.
// It returns ErrCacheMiss when the key is absent.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return fmt.Errorf("%w: corrupt entry: %v", ErrCacheMiss, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return c.Set(ctx, key, data, ttl)
}
