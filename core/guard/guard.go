package guard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/auth"
	"github.com/gatekit/gatekit/core/config"
	"github.com/gatekit/gatekit/core/handler"
	"github.com/gatekit/gatekit/core/response"
	"github.com/gatekit/gatekit/middleware"
	"github.com/gatekit/gatekit/pkg/ratelimiter"
)

// Guard is the layered request-authorization pipeline. It wraps handlers
// with a fixed, short-circuiting stage order:
//
//	rate limit -> origin -> token -> claims -> role/permission -> handler
//
// A stage that denies stops the chain; later stages never run. Guards are
// constructed explicitly and injected where needed, one logical instance
// per process, so tests get fresh state.
type Guard[C handler.Context] struct {
	cfg      config.Security
	verifier auth.TokenVerifier
	resolver auth.ClaimsResolver
	logger   *slog.Logger

	clientIP  handler.Middleware[C]
	rateLimit handler.Middleware[C]
	origin    handler.Middleware[C]
	sanitize  handler.Middleware[C]
}

// Option configures a Guard.
type Option[C handler.Context] func(*Guard[C])

// WithLogger sets the logger used for panic reports.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(g *Guard[C]) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a guard from its collaborators: the rate limiter, the token
// verifier, and the claims resolver. The limiter is required; verifier and
// resolver may be nil for a guard that only serves Public endpoints.
func New[C handler.Context](cfg config.Security, limiter ratelimiter.RateLimiter, verifier auth.TokenVerifier, resolver auth.ClaimsResolver, opts ...Option[C]) (*Guard[C], error) {
	if limiter == nil {
		return nil, fmt.Errorf("guard: rate limiter is required")
	}

	g := &Guard[C]{
		cfg:      cfg,
		verifier: verifier,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.clientIP = middleware.ClientIP[C]()
	g.rateLimit = middleware.RateLimit[C](middleware.RateLimitConfig{
		Limiter:    limiter,
		SetHeaders: true,
	})
	g.origin = middleware.Origin[C](middleware.OriginConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Enforce:        cfg.Environment.IsProduction(),
	})
	g.sanitize = middleware.SanitizeBody[C]()

	return g, nil
}

// Public wraps a handler with rate limiting and input sanitization only.
func (g *Guard[C]) Public(h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	return g.wrap(h, g.clientIP, g.rateLimit, g.sanitize)
}

// Authenticated wraps a handler with the full pipeline: rate limit, origin
// validation (production only), bearer credential validation, and claims
// resolution. The handler runs with a SecurityContext in the request
// context.
func (g *Guard[C]) Authenticated(h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	return g.wrap(h, g.clientIP, g.rateLimit, g.origin, g.sanitize, g.authenticate())
}

// RoleGated wraps a handler like Authenticated and additionally requires
// the resolved role to match. The admin role satisfies every gate.
func (g *Guard[C]) RoleGated(role string, h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	return g.wrap(h, g.clientIP, g.rateLimit, g.origin, g.sanitize, g.authenticate(), g.requireRole(role))
}

// PermissionGated wraps a handler like Authenticated and additionally
// requires the permission to be present in the resolved set. The admin
// role implies all permissions.
func (g *Guard[C]) PermissionGated(permission string, h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	return g.wrap(h, g.clientIP, g.rateLimit, g.origin, g.sanitize, g.authenticate(), g.requirePermission(permission))
}

// wrap chains the stages around the handler, outermost first, and installs
// the panic boundary.
func (g *Guard[C]) wrap(h handler.HandlerFunc[C], stages ...handler.Middleware[C]) handler.HandlerFunc[C] {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return g.boundary(h)
}

// boundary converts a panic anywhere in the pipeline or handler into an
// error response routed through the taxonomy, so no request escapes the
// envelope contract.
func (g *Guard[C]) boundary(h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	return func(ctx C) (resp handler.Response) {
		defer func() {
			if rec := recover(); rec != nil {
				g.logger.Error("panic in authorization pipeline",
					slog.Any("panic", rec),
					slog.String("path", ctx.Request().URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				resp = response.Error(toError(rec))
			}
		}()
		return h(ctx)
	}
}

// authenticate extracts the bearer credential, verifies it, and resolves
// the principal's claims into a SecurityContext.
func (g *Guard[C]) authenticate() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if g.verifier == nil || g.resolver == nil {
				return response.Error(apperror.ErrServiceUnavailable.WithMessage("Authentication is not configured"))
			}

			token, ok := bearerToken(ctx.Request().Header.Get("Authorization"))
			if !ok {
				return response.Error(apperror.ErrUnauthorized)
			}

			principal, err := g.verifier.Verify(ctx, token)
			if err != nil {
				return response.Error(classifyAuthFailure(err))
			}

			claims, err := g.resolver.Resolve(ctx, principal)
			if err != nil {
				return response.Error(err)
			}

			setSecurityContext(ctx, auth.NewSecurityContext(principal, claims))
			return next(ctx)
		}
	}
}

// requireRole denies with 403 unless the security context carries the
// required role or admin.
func (g *Guard[C]) requireRole(role string) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			sec, ok := GetSecurityContext(ctx)
			if !ok || !sec.HasRole(role) {
				return response.Error(apperror.ErrInsufficientPermissions)
			}
			return next(ctx)
		}
	}
}

// requirePermission denies with 403 unless the permission is in the
// resolved set (or the role is admin).
func (g *Guard[C]) requirePermission(permission string) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			sec, ok := GetSecurityContext(ctx)
			if !ok || !sec.HasPermission(permission) {
				return response.Error(apperror.ErrInsufficientPermissions)
			}
			return next(ctx)
		}
	}
}

// bearerToken extracts the credential from an Authorization header value.
// The "Bearer " prefix is required exactly; anything else is a missing
// credential.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}

// classifyAuthFailure maps verifier failures to taxonomy errors. Already
// classified variants pass through; anything else is an invalid token.
func classifyAuthFailure(err error) error {
	var appErr apperror.Error
	var provErr apperror.ProviderError
	if errors.As(err, &appErr) || errors.As(err, &provErr) {
		return err
	}
	return apperror.ErrInvalidToken
}

// toError converts a recovered panic value to an error.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("panic: %v", e)
	}
}
