package container

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/ratelimit"
)

// RateLimitPackage provides the shared-counter rate limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		options := do.MustInvoke[*Options](i)

		if options.MemoryMode {
			return ratelimit.NewMemoryStore(), nil
		}

		return ratelimit.NewRedisStore(do.MustInvoke[*redis.Client](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		options := do.MustInvoke[*Options](i)

		return ratelimit.NewFixedWindowLimiter(
			do.MustInvoke[ratelimit.Store](i),
			options.RateLimit,
			time.Duration(options.RateLimitWindowSeconds)*time.Second,
		), nil
	})
}
