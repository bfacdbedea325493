package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the production Cache backed by a Redis instance.
//
// The memory bound is enforced by Redis itself: the instance is expected to
// run with maxmemory set and the allkeys-lru eviction policy, which gives
// the LRU-under-pressure behavior on top of the per-entry TTLs set here.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: "url:",
	}
}

func (r *Redis) Get(ctx context.Context, code string) (string, error) {
	url, err := r.client.Get(ctx, r.prefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}

		return "", err
	}

	return url, nil
}

func (r *Redis) Set(ctx context.Context, code, url string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+code, url, ttl).Err()
}

func (r *Redis) Evict(ctx context.Context, code string) error {
	return r.client.Del(ctx, r.prefix+code).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Compile-time check.
var _ Cache = (*Redis)(nil)
