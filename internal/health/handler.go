// Package health exposes the dependency health probe.
package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/ratelimit"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler checks the store and cache dependencies.
type Handler struct {
	store Pinger
	cache Pinger
}

// NewHandler creates a health handler.
func NewHandler(store, cache Pinger) *Handler {
	return &Handler{
		store: store,
		cache: cache,
	}
}

// Response is the health check response.
type Response struct {
	Status int
	Body   struct {
		Status string `json:"status"`
		Store  string `json:"store"`
		Cache  string `json:"cache"`
	}
}

// Check probes the dependencies. A cache outage degrades the service but
// keeps it serving (reads fall through to the store), so the probe still
// answers 200. A store outage makes the service unable to serve and answers
// 503, taking the instance out of rotation.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{Status: http.StatusOK}
	resp.Body.Status = "ok"
	resp.Body.Store = "healthy"
	resp.Body.Cache = "healthy"

	if err := h.cache.Ping(ctx); err != nil {
		resp.Body.Cache = "unhealthy"
		resp.Body.Status = "degraded"
	}

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Store = "unhealthy"
		resp.Body.Status = "unhealthy"
		resp.Status = http.StatusServiceUnavailable
	}

	return resp, nil
}

// RegisterRoutes registers the health route. The probe is exempt from rate
// limiting so orchestrators can poll it freely.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
