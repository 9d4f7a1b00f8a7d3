package router

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gatekit/gatekit/core/apperror"
	"github.com/gatekit/gatekit/core/handler"
)

// Standard router errors.
var (
	ErrNilResponse      = errors.New("handler returned nil response")
	ErrNoContextFactory = errors.New("no context factory provided and C is not *Context")
)

// Router dispatches HTTP requests to type-safe handlers. It is a thin
// adapter over http.ServeMux: route matching and path parameters come from
// the standard library, while middleware chaining, panic recovery, and
// error funneling are handled here.
type Router[C handler.Context] struct {
	mux          *http.ServeMux
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(w http.ResponseWriter, r *http.Request) C
	logger       *slog.Logger
}

// New creates a router. Custom context types require a factory option;
// the default *Context works out of the box.
func New[C handler.Context](opts ...Option[C]) *Router[C] {
	rt := &Router[C]{
		mux:    http.NewServeMux(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(rt)
	}

	if rt.errorHandler == nil {
		rt.errorHandler = defaultErrorHandler[C]
	}

	if rt.newContext == nil {
		rt.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return rt
}

// Use appends middleware applied to every route. Must be called before the
// routes it should affect are requested.
func (rt *Router[C]) Use(middlewares ...handler.Middleware[C]) {
	rt.middlewares = append(rt.middlewares, middlewares...)
}

// Get registers a handler for GET requests on the pattern.
func (rt *Router[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	rt.Method(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests on the pattern.
func (rt *Router[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	rt.Method(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests on the pattern.
func (rt *Router[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	rt.Method(http.MethodPut, pattern, h)
}

// Patch registers a handler for PATCH requests on the pattern.
func (rt *Router[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	rt.Method(http.MethodPatch, pattern, h)
}

// Delete registers a handler for DELETE requests on the pattern.
func (rt *Router[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	rt.Method(http.MethodDelete, pattern, h)
}

// Handle registers a handler for all methods on the pattern.
func (rt *Router[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	rt.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rt.dispatch(w, r, h)
	})
}

// Method registers a handler for a specific HTTP method on the pattern.
func (rt *Router[C]) Method(method, pattern string, h handler.HandlerFunc[C]) {
	rt.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, r *http.Request) {
		rt.dispatch(w, r, h)
	})
}

// ServeHTTP implements http.Handler. Unmatched requests are funneled
// through the error handler so even route misses answer with the standard
// envelope. ServeMux reports an empty pattern for method mismatches too;
// those are deliberately collapsed into the not-found envelope, since the
// closed error-code set has no method-not-allowed member and a 405 would
// leak which methods a path supports.
func (rt *Router[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := rt.mux.Handler(r); pattern == "" {
		ww := newResponseWriter(w)
		ctx := rt.newContext(ww, r)
		rt.errorHandler(ctx, apperror.ErrNotFound.WithMessage("Route not found"))
		return
	}
	rt.mux.ServeHTTP(w, r)
}

// dispatch runs the middleware chain around the handler, renders the
// response, and routes every failure to the error handler.
func (rt *Router[C]) dispatch(w http.ResponseWriter, r *http.Request, h handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := rt.newContext(ww, r)

	resp := rt.invoke(ctx, chain(rt.middlewares, h))
	if resp == nil {
		rt.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, r); err != nil {
		rt.errorHandler(ctx, err)
	}
}

// invoke calls the handler, converting a panic into an error response so
// one broken handler cannot take down the process.
func (rt *Router[C]) invoke(ctx C, h handler.HandlerFunc[C]) (resp handler.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			rt.logger.Error("panic recovered",
				slog.Any("panic", rec),
				slog.String("path", ctx.Request().URL.Path),
				slog.String("stack", string(debug.Stack())),
			)
			err := toError(rec)
			resp = func(w http.ResponseWriter, r *http.Request) error {
				return err
			}
		}
	}()
	return h(ctx)
}

// defaultErrorHandler renders plain-text errors. Applications replace it
// with the envelope handler via WithErrorHandler.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(interface{ StatusCode() int }); ok {
		status = sc.StatusCode()
	}
	http.Error(w, err.Error(), status)
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
