package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gatekit/gatekit/core/handler"
	"github.com/gatekit/gatekit/core/sanitizer"
)

// defaultMaxSanitizeBody bounds how much of a request body is buffered for
// sanitization.
const defaultMaxSanitizeBody = 1 << 20 // 1MB

// SanitizeBodyConfig configures the body sanitization middleware.
type SanitizeBodyConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// MaxBodySize is the largest body that will be sanitized (default: 1MB).
	// Larger bodies pass through untouched.
	MaxBodySize int64
}

// SanitizeBody creates a middleware that strips unsafe content from JSON
// request bodies before the handler sees them with default configuration.
func SanitizeBody[C handler.Context]() handler.Middleware[C] {
	return SanitizeBodyWithConfig[C](SanitizeBodyConfig{})
}

// SanitizeBodyWithConfig creates a body sanitization middleware with custom
// configuration. The decoded body tree is passed through the recursive
// sanitizer and re-encoded; shape, order, and keys are preserved.
// Non-JSON and undecodable bodies pass through unchanged, since
// sanitization has no failure mode of its own.
func SanitizeBodyWithConfig[C handler.Context](cfg SanitizeBodyConfig) handler.Middleware[C] {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxSanitizeBody
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			if r.Body == nil || !isJSONContentType(r.Header.Get("Content-Type")) {
				return next(ctx)
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, cfg.MaxBodySize+1))
			if err != nil || int64(len(body)) > cfg.MaxBodySize {
				// Stitch the buffered prefix back onto the unread remainder.
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
				return next(ctx)
			}

			var decoded any
			if err := json.Unmarshal(body, &decoded); err != nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				return next(ctx)
			}

			clean, err := json.Marshal(sanitizer.Sanitize(decoded))
			if err != nil {
				r.Body = io.NopCloser(bytes.NewReader(body))
				return next(ctx)
			}

			r.Body = io.NopCloser(bytes.NewReader(clean))
			r.ContentLength = int64(len(clean))

			return next(ctx)
		}
	}
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "application/json")
}
