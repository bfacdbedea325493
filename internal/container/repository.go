package container

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/cache"
	"github.com/serroba/shortlink-go/internal/clicks"
	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/serroba/shortlink-go/internal/shortener"
	"github.com/serroba/shortlink-go/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the persistent repository, the cache, and the
// create/resolve services on top of them.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options := do.MustInvoke[*Options](i)

		if options.MemoryMode {
			return store.NewMemory(), nil
		}

		return do.MustInvoke[*store.Postgres](i), nil
	})

	do.Provide(injector, func(i *do.Injector) (cache.Cache, error) {
		options := do.MustInvoke[*Options](i)

		if options.MemoryMode {
			return cache.NewMemory(options.CacheMaxEntries), nil
		}

		return cache.NewRedis(do.MustInvoke[*redis.Client](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.CreateService, error) {
		options := do.MustInvoke[*Options](i)

		return shortener.NewCreateService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[cache.Cache](i),
			time.Duration(options.CacheTTLSeconds)*time.Second,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.RedirectService, error) {
		options := do.MustInvoke[*Options](i)

		return shortener.NewRedirectService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[cache.Cache](i),
			time.Duration(options.CacheTTLSeconds)*time.Second,
			do.MustInvoke[messaging.Publish[clicks.Event]](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}
