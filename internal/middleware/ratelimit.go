// Package middleware provides the huma middlewares shared by every route:
// rate limiting, request metadata capture, and admin authentication.
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware that admits requests per client
// network identity. It applies uniformly to create and redirect paths.
//
// A limiter store failure fails closed: the request is denied rather than
// letting an outage turn off abuse protection.
func RateLimiter(api huma.API, limiter ratelimit.Limiter, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if cfg := rateLimitConfig(ctx); cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		ip := clientIP(ctx)

		decision, err := limiter.Allow(ctx.Context(), ip)
		if err != nil {
			logger.Error("rate limit check failed, denying request",
				zap.String("client_ip", ip),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit check unavailable")

			return
		}

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.Int("retry_after_seconds", retryAfter),
			)

			ctx.SetHeader("Retry-After", strconv.Itoa(retryAfter))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit exceeded, retry in %ds", retryAfter))

			return
		}

		next(ctx)
	}
}

func rateLimitConfig(ctx huma.Context) *ratelimit.EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[ratelimit.MetadataKey].(ratelimit.EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// clientIP extracts the client network identity, honoring proxy headers.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// First address is the original client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	// Host carries the remote addr in the huma context.
	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
