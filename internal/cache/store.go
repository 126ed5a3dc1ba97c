// Package cache implements the response cache: a time-windowed memoization
// of rendered feed responses. Expiry is TTL-only; writes to the underlying
// data never invalidate a cached response inside its window.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Store is the response-cache contract shared by the in-memory slot and
// the Redis-backed variant.
type Store interface {
	// Get returns the cached response for key, if present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a response under key for the configured window.
	Set(ctx context.Context, key string, value []byte)
	// Clear drops any cached response. Intended for tests and tooling;
	// the serving path never clears.
	Clear(ctx context.Context)
}

// HashKey creates a fixed-length cache key from the given parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
