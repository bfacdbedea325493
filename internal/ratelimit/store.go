// Package ratelimit provides per-client admission control backed by a
// shared counter store, so the limit holds across any number of concurrent
// request-handling workers.
package ratelimit

import (
	"context"
	"time"
)

// Store is the shared counter state behind the limiter.
type Store interface {
	// Incr atomically increments the counter for key within the current
	// fixed window and returns the new count plus the time left until the
	// window resets. The increment and the window-boundary handling are a
	// single atomic operation against the shared state.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, reset time.Duration, err error)
}
