package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces rate limit keys in a shared Redis instance.
const defaultKeyPrefix = "ratelimit:"

// RedisStore implements Store on Redis, giving multiple application
// instances a shared fixed-window counter. Keys carry a TTL equal to the
// window, so Redis expires state server-side and no sweep is needed.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the key namespace prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client is required", ErrInvalidConfig)
	}

	rs := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs, nil
}

// incrScript atomically increments the window counter and stamps the TTL
// when the key is created. Running as a script keeps the read-modify-write
// atomic across concurrent clients.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// Increment records one request against key within the fixed window.
func (rs *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := incrScript.Run(ctx, rs.client, []string{rs.prefix + key}, window.Milliseconds()).Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis increment: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("redis increment: unexpected reply %v", res)
	}

	count, ok := res[0].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("redis increment: unexpected count type %T", res[0])
	}
	ttlMS, ok := res[1].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("redis increment: unexpected ttl type %T", res[1])
	}

	// A key without expiry (PTTL -1) should not happen with the script
	// above; treat it as a window starting now.
	if ttlMS < 0 {
		ttlMS = window.Milliseconds()
	}

	return count, time.Now().Add(time.Duration(ttlMS) * time.Millisecond), nil
}

// Reset clears the window for key.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis reset: %w", err)
	}
	return nil
}
