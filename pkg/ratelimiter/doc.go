// Package ratelimiter provides fixed-window rate limiting with pluggable
// storage backends.
//
// A fixed-window counter tracks requests per key and resets at fixed time
// boundaries. The first request from a key creates its window; requests
// beyond the configured limit within the same window are rejected without
// touching state. Because counters reset at boundaries rather than rolling,
// a client can burst up to twice the nominal rate across a boundary; this
// is a documented approximation of the algorithm.
//
// Basic setup:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewFixedWindow(store, ratelimiter.Config{
//		Limit:  60,
//		Window: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, clientip.GetIP(r))
//	if err != nil {
//		// store failure, not a policy rejection
//	}
//	if !result.Allowed() {
//		// reject with 429; result.RetryAfter() guides the client
//	}
//
// MemoryStore keeps state in-process under a mutex and offers an optional
// background sweep (Start/Stop) that evicts expired windows so the key map
// does not grow without bound. RedisStore shares one counter across
// application instances; Redis expires its keys server-side.
package ratelimiter
