package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatekit/gatekit/core/handler"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger
	// LogLevel for request logging (default: slog.LevelInfo)
	LogLevel slog.Level
	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration
	// Component name attached to every log record
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration. Each request is logged once, after its response renders,
// with method, path, status, duration, client IP, and request ID.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				sw := &statusRecorder{ResponseWriter: w}
				err := resp(sw, r)

				elapsed := time.Since(start)
				attrs := []any{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", sw.status()),
					slog.Duration("duration", elapsed),
				}
				if cfg.Component != "" {
					attrs = append(attrs, slog.String("component", cfg.Component))
				}
				if ip, ok := GetClientIP(ctx); ok {
					attrs = append(attrs, slog.String("client_ip", ip))
				}
				if id, ok := GetRequestID(ctx); ok {
					attrs = append(attrs, slog.String("request_id", id))
				}
				if err != nil {
					attrs = append(attrs, slog.Any("error", err))
				}

				level := cfg.LogLevel
				if elapsed >= cfg.SlowRequestThreshold {
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow", true))
				}
				cfg.Logger.Log(ctx, level, "request", attrs...)

				return err
			}
		}
	}
}

// statusRecorder captures the status code written by downstream renderers.
type statusRecorder struct {
	http.ResponseWriter
	code    int
	written bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.written {
		return
	}
	w.code = code
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
		w.code = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) status() int {
	if !w.written {
		return http.StatusOK
	}
	return w.code
}
