package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the window counters in Redis, shared by every worker.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed rate limit store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "rate_limit:",
	}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := s.prefix + key

	// MULTI/EXEC keeps the increment and the window bootstrap atomic:
	// ExpireNX only arms the TTL on the request that opens the window.
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.TTL(ctx, k)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	reset := ttl.Val()
	if reset < 0 {
		reset = window
	}

	return incr.Val(), reset, nil
}

// Compile-time check.
var _ Store = (*RedisStore)(nil)
