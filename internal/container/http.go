package container

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/cache"
	"github.com/serroba/shortlink-go/internal/handlers"
	"github.com/serroba/shortlink-go/internal/health"
	"github.com/serroba/shortlink-go/internal/middleware"
	"github.com/serroba/shortlink-go/internal/ratelimit"
	"github.com/serroba/shortlink-go/internal/shortener"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, do.MustInvoke[ratelimit.Limiter](i), logger),
			middleware.AdminAuth(api, options.AdminToken, logger),
		)

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.CreateService](i),
			do.MustInvoke[*shortener.RedirectService](i),
			options.BaseURL,
			logger,
		)
		adminHandler := handlers.NewAdminHandler(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[*shortener.CreateService](i),
			options.BaseURL,
			logger,
		)

		handlers.RegisterRoutes(api, urlHandler)
		handlers.RegisterAdminRoutes(api, adminHandler)
		health.RegisterRoutes(api, health.NewHandler(
			storePinger(i),
			do.MustInvoke[cache.Cache](i),
		))

		return api, nil
	})
}

func storePinger(i *do.Injector) health.Pinger {
	if pinger, ok := do.MustInvoke[shortener.Repository](i).(health.Pinger); ok {
		return pinger
	}

	return pingOK{}
}

type pingOK struct{}

func (pingOK) Ping(_ context.Context) error { return nil }
