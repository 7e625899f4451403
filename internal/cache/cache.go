// Package cache stores computed settlement plans so repeated requests for an
// unchanged group skip the engine. Entries expire after a TTL and are dropped
// by prefix when a group or the rate table changes.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-value cache with per-entry TTL.
type Cache interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Close releases any resources held by the cache.
	Close() error
}
