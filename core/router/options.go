package router

import (
	"log/slog"
	"net/http"

	"github.com/gatekit/gatekit/core/handler"
)

// Option configures a Router.
type Option[C handler.Context] func(*Router[C])

// WithErrorHandler replaces the default plain-text error handler.
func WithErrorHandler[C handler.Context](eh handler.ErrorHandler[C]) Option[C] {
	return func(rt *Router[C]) {
		if eh != nil {
			rt.errorHandler = eh
		}
	}
}

// WithContextFactory provides the constructor for custom context types.
func WithContextFactory[C handler.Context](factory func(w http.ResponseWriter, r *http.Request) C) Option[C] {
	return func(rt *Router[C]) {
		if factory != nil {
			rt.newContext = factory
		}
	}
}

// WithLogger sets the logger used for panic reports.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(rt *Router[C]) {
		if logger != nil {
			rt.logger = logger
		}
	}
}
