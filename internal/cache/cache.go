// Package cache provides the code-to-URL lookup cache in front of the
// persistent store.
//
// Entries are a performance projection of active records only: creation
// writes through, resolution backfills on a miss, and deactivating a record
// synchronously evicts its entry. URLs are immutable for the lifetime of a
// record, so eviction on delete is the only invalidation path needed.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the code has no live entry.
var ErrMiss = errors.New("cache miss")

// Cache maps short codes to original URLs with a TTL and a bounded
// footprint. Implementations evict least-recently-used entries first when
// the bound is reached, independent of TTL.
type Cache interface {
	// Get returns the URL cached for code, or ErrMiss.
	Get(ctx context.Context, code string) (string, error)

	// Set stores the code to URL mapping for at most ttl.
	Set(ctx context.Context, code, url string, ttl time.Duration) error

	// Evict removes the entry for code, if present.
	Evict(ctx context.Context, code string) error

	// Ping reports whether the cache backend is reachable.
	Ping(ctx context.Context) error
}
