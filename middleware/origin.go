package middleware

import (
	"net/http"
	"slices"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/handler"
	"github.com/gatekit/gatekit/core/response"
)

// OriginConfig configures the origin validation middleware.
type OriginConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// AllowedOrigins is the exact-match allow-list
	AllowedOrigins []string
	// Enforce enables rejection. When false the middleware is a no-op,
	// which is the development and test behavior.
	Enforce bool
}

// Origin creates an origin validation middleware. When enforcing, a request
// whose Origin header is absent or not on the allow-list is rejected with
// 403 before any credential is examined. Matching is exact string
// comparison; there is no wildcard support.
func Origin[C handler.Context](cfg OriginConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			if !cfg.Enforce {
				return next(ctx)
			}

			origin := ctx.Request().Header.Get("Origin")
			if origin == "" || !slices.Contains(cfg.AllowedOrigins, origin) {
				return response.Error(apperror.New(apperror.KindInsufficientPermissions, "Origin not allowed", http.StatusForbidden))
			}

			return next(ctx)
		}
	}
}
