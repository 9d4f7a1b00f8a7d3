package ratelimiter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// window holds the fixed-window counter state for one key.
type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore implements Store using in-process storage. Suitable for
// single-instance deployments; multi-instance deployments need RedisStore
// so all instances share one counter.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	// Configuration
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// State management
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	// Observability metrics
	windowsCreated atomic.Int64
	windowsRemoved atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring and debugging.
type MemoryStoreStats struct {
	WindowsCreated int64 // Total number of windows created
	WindowsRemoved int64 // Total number of expired windows swept
	ActiveWindows  int   // Current number of tracked windows
	IsRunning      bool  // Whether the sweep goroutine is running
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the sweep interval for removing expired windows.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithMemoryStoreLogger sets the logger for internal operations.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates a new in-memory store.
// Call Start() to begin the background sweep that bounds memory growth.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Increment records one request against key within the fixed window.
// The lookup, reset check, and counter update happen under one lock, so
// concurrent requests for the same key observe a linearizable sequence.
func (ms *MemoryStore) Increment(ctx context.Context, key string, windowDur time.Duration) (int64, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	w, exists := ms.windows[key]

	if !exists {
		w = &window{}
		ms.windows[key] = w
		ms.windowsCreated.Add(1)
	}

	if !exists || !now.Before(w.resetAt) {
		w.count = 1
		w.resetAt = now.Add(windowDur)
	} else {
		w.count++
	}

	return w.count, w.resetAt, nil
}

// Reset clears the window for key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.windows, key)
	return nil
}

// Stats returns current observability metrics.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	active := len(ms.windows)
	ms.mu.Unlock()

	return MemoryStoreStats{
		WindowsCreated: ms.windowsCreated.Load(),
		WindowsRemoved: ms.windowsRemoved.Load(),
		ActiveWindows:  active,
		IsRunning:      ms.running.Load(),
	}
}

// Start begins the background sweep goroutine. This is a blocking operation
// that runs until the context is cancelled; call it in a goroutine or from
// an errgroup.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store already started")
	}
	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}
	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	ms.logger.InfoContext(ms.ctx, "rate limit sweep started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			ms.logger.InfoContext(context.Background(), "rate limit sweep stopping")
			return ms.ctx.Err()
		case <-ticker.C:
			ms.sweepWithWait()
		}
	}
}

// Stop gracefully shuts down the background sweep with a timeout.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store not started")
	}
	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		ms.logger.WarnContext(context.Background(), "memory store shutdown timeout exceeded",
			slog.Duration("timeout", ms.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Close stops the background sweep if it was started. Safe to call on a
// store that never started; convenient for tests.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	started := ms.cancel != nil
	ms.mu.Unlock()

	if !started {
		return nil
	}
	return ms.Stop()
}

func (ms *MemoryStore) sweepWithWait() {
	ms.wg.Add(1)
	defer ms.wg.Done()
	ms.sweep()
}

// sweep removes windows that expired before the sweep started. Entries are
// recreated lazily on the key's next request, so removal never changes
// admission decisions.
func (ms *MemoryStore) sweep() {
	now := time.Now()

	ms.mu.Lock()
	removed := 0
	for key, w := range ms.windows {
		if !now.Before(w.resetAt) {
			delete(ms.windows, key)
			removed++
		}
	}
	ms.mu.Unlock()

	if removed > 0 {
		ms.windowsRemoved.Add(int64(removed))
		ms.logger.DebugContext(context.Background(), "swept expired rate limit windows",
			slog.Int("removed", removed))
	}
}
