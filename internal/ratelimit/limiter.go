package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of an admission check. RetryAfter is only
// meaningful when Allowed is false and is at most the window size.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter decides whether a request from a client identity is admitted.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// FixedWindowLimiter admits a fixed quota of requests per window per key.
// The counter lives in the Store, so the decision is linearizable per key
// across all workers sharing that store.
type FixedWindowLimiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter admitting limit requests per window.
func NewFixedWindowLimiter(store Store, limit int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, reset, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, err
	}

	if count > l.limit {
		return Decision{RetryAfter: reset}, nil
	}

	return Decision{Allowed: true, Remaining: l.limit - count}, nil
}

// Compile-time check.
var _ Limiter = (*FixedWindowLimiter)(nil)
