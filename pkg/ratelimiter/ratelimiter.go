package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config defines fixed-window rate limit parameters.
type Config struct {
	// Limit is the maximum number of admitted requests per window.
	Limit int
	// Window is the fixed window duration.
	Window time.Duration
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Result reports the outcome of a rate limit check.
type Result struct {
	// Limit is the configured admission ceiling.
	Limit int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetAt is when the current window expires.
	ResetAt time.Time

	allowed bool
}

// Allowed reports whether the request was admitted.
func (r *Result) Allowed() bool {
	return r.allowed
}

// RetryAfter returns how long the client should wait before retrying.
// Zero for admitted requests.
func (r *Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	if d := time.Until(r.ResetAt); d > 0 {
		return d
	}
	return 0
}

// Store persists per-key window state. Implementations must make the
// read-modify-write window update atomic per key.
type Store interface {
	// Increment records one request against key and returns the total
	// observed in the current window, including this one, plus the window
	// expiry. Windows are created lazily and reset when expired.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
	// Reset clears the window for key, for administrative overrides.
	Reset(ctx context.Context, key string) error
}

// RateLimiter is the admission contract consumed by middleware.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// FixedWindow implements RateLimiter with a fixed-window counter over a
// pluggable store. Counters reset at fixed boundaries, so a burst of up to
// twice the nominal rate is possible across a boundary. This is a known
// approximation of the algorithm, not a bug.
type FixedWindow struct {
	store  Store
	config Config
}

// NewFixedWindow creates a fixed-window limiter. Returns an error if the
// store is nil or the configuration is invalid.
func NewFixedWindow(store Store, config Config) (*FixedWindow, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &FixedWindow{store: store, config: config}, nil
}

// Allow records one request for key and reports whether it is admitted.
// It never fails for an unknown key; windows are created on first use.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := fw.store.Increment(ctx, key, fw.config.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return &Result{
		Limit:     fw.config.Limit,
		Remaining: max(0, fw.config.Limit-int(count)),
		ResetAt:   resetAt,
		allowed:   count <= int64(fw.config.Limit),
	}, nil
}

// Reset clears the window for key.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	return fw.store.Reset(ctx, key)
}
