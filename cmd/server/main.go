// The server binary serves the URL shortener API: shorten, redirect, info,
// the health probe, and the token-guarded admin surface.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/container"
	"go.uber.org/zap"
)

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)

	// Memory mode runs everything in-process: no Redis or Postgres client
	// gets wired at all.
	if !options.MemoryMode {
		container.RedisPackage(injector)
		container.PostgresPackage(injector)
	}

	container.RepositoryPackage(injector)
	container.RateLimitPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HTTPPackage(injector)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			// Building the API registers every route on the router.
			_ = do.MustInvoke[huma.API](injector)

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           do.MustInvoke[*chi.Mux](injector),
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("shortlink server listening",
				zap.Int("port", options.Port),
				zap.String("base_url", options.BaseURL),
				zap.Bool("memory_mode", options.MemoryMode),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server stopped unexpectedly", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("draining connections")

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("failed to drain http server", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("failed to shut down services", zap.Error(err))
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}
