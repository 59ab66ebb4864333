// Package cache provides the read-through content cache used for public reads.
//
// The cache is advisory: callers must treat every error as a miss and stay
// correct when the cache is absent entirely.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a TTL-bounded key/value store safe for concurrent use.
type Cache interface {
	// Get returns the stored value, or ErrMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A non-positive ttl uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

func IsMiss(err error) bool {
	return errors.Is(err, ErrMiss)
}
