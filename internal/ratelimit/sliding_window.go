package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// slidingWindowScript keeps one sorted set per key, scored by admission time in ms.
// Entries at or before the cutoff are dropped; if what remains is under the limit the
// request is admitted and recorded. Running it as a script makes check-and-consume
// atomic across every instance that shares the Redis, and reading TIME inside it makes
// the Redis server the only clock, so skew between instances does not matter.
//
// KEYS[1] = window key
// ARGV[1] = window (ms), ARGV[2] = limit, ARGV[3] = unique member
var slidingWindowScript = redis.NewScript(`
if redis.replicate_commands then
	redis.replicate_commands()
end
local t = redis.call("TIME")
local micros = tonumber(t[2])
local now = tonumber(t[1]) * 1000 + (micros - micros % 1000) / 1000
local window = tonumber(ARGV[1])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now - window)
local count = redis.call("ZCARD", KEYS[1])
if count >= tonumber(ARGV[2]) then
	return 0
end
redis.call("ZADD", KEYS[1], now, ARGV[3])
redis.call("PEXPIRE", KEYS[1], window)
return 1
`)

// SlidingWindow limits each key to limit admissions per rolling window, backed by Redis
type SlidingWindow struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
	limit  int
}

// NewSlidingWindow creates a limiter. prefix namespaces keys, e.g. "chirp:ratelimit:posts".
func NewSlidingWindow(client redis.UniversalClient, prefix string, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		prefix: prefix,
		window: window,
		limit:  limit,
	}
}

// CheckAndConsume admits the request if key has fewer than limit admissions in the
// trailing window. A denied request is not recorded. Redis errors are returned as-is;
// there is no local fallback.
func (l *SlidingWindow) CheckAndConsume(ctx context.Context, key string) (bool, error) {
	result, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.key(key)},
		strconv.FormatInt(l.window.Milliseconds(), 10),
		strconv.Itoa(l.limit),
		uuid.NewString(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("sliding window check for %q: %w", key, err)
	}

	return result == 1, nil
}

// Ping checks that the backing store is reachable
func (l *SlidingWindow) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *SlidingWindow) key(k string) string {
	return l.prefix + ":" + k
}
