package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-go/internal/handlers"
	"go.uber.org/zap"
)

// AdminAuth returns a huma middleware enforcing the static admin bearer
// token on operations marked with handlers.AdminMetadataKey.
func AdminAuth(api huma.API, token string, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !adminOnly(ctx) {
			next(ctx)

			return
		}

		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing authorization header")

			return
		}

		presented := strings.TrimPrefix(header, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			logger.Warn("invalid admin token", zap.String("client_ip", clientIP(ctx)))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "invalid admin token")

			return
		}

		next(ctx)
	}
}

func adminOnly(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	flag, ok := op.Metadata[handlers.AdminMetadataKey].(bool)

	return ok && flag
}
