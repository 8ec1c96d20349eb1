package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverClock drives the Redis server's TIME, which is the limiter's only clock
type serverClock struct {
	mr  *miniredis.Miniredis
	now time.Time
}

func (c *serverClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	c.mr.SetTime(c.now)
}

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*SlidingWindow, *miniredis.Miniredis, *serverClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &serverClock{mr: mr, now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mr.SetTime(clock.now)

	return NewSlidingWindow(client, "test:posts", limit, window), mr, clock
}

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	limiter, _, now := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.CheckAndConsume(ctx, "user_1")
		require.NoError(t, err)
		assert.True(t, allowed, "call %d should be allowed", i+1)
		now.Advance(5 * time.Second)
	}

	allowed, err := limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, allowed, "4th call within the window must be denied")
}

func TestSlidingWindow_KeysAreIndependent(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.CheckAndConsume(ctx, "user_2")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindow_WindowSlides(t *testing.T) {
	limiter, _, now := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// t=0s, 20s, 40s
	for i := 0; i < 3; i++ {
		allowed, err := limiter.CheckAndConsume(ctx, "user_1")
		require.NoError(t, err)
		require.True(t, allowed)
		now.Advance(20 * time.Second)
	}

	// t=60s: the t=0 admission is exactly one window old and no longer counts
	allowed, err := limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.True(t, allowed)

	// t=60s again: 20s, 40s, 60s are all inside the window
	allowed, err = limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindow_DeniedCallsDoNotConsume(t *testing.T) {
	limiter, mr, now := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	require.True(t, allowed)

	for i := 0; i < 5; i++ {
		now.Advance(10 * time.Second)
		allowed, err = limiter.CheckAndConsume(ctx, "user_1")
		require.NoError(t, err)
		assert.False(t, allowed)
	}

	members, err := mr.ZMembers("test:posts:user_1")
	require.NoError(t, err)
	assert.Len(t, members, 1)

	// t=61s: the single admission has expired
	now.Advance(11 * time.Second)
	allowed, err = limiter.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindow_SetsExpiry(t *testing.T) {
	limiter, mr, _ := newTestLimiter(t, 3, time.Minute)

	_, err := limiter.CheckAndConsume(context.Background(), "user_1")
	require.NoError(t, err)

	assert.Equal(t, time.Minute, mr.TTL("test:posts:user_1"))
}

func TestSlidingWindow_FailsClosedWhenStoreIsDown(t *testing.T) {
	limiter, mr, _ := newTestLimiter(t, 3, time.Minute)
	mr.Close()

	allowed, err := limiter.CheckAndConsume(context.Background(), "user_1")
	assert.Error(t, err)
	assert.False(t, allowed)
	assert.Error(t, limiter.Ping(context.Background()))
}

func TestSlidingWindow_SharedAcrossInstances(t *testing.T) {
	limiter, mr, now := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// A second instance on the same Redis; its local clock never enters the decision
	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = other.Close() })
	peer := NewSlidingWindow(other, "test:posts", 3, time.Minute)

	for i, l := range []*SlidingWindow{limiter, peer, limiter} {
		allowed, err := l.CheckAndConsume(ctx, "user_1")
		require.NoError(t, err)
		require.True(t, allowed, "call %d should be allowed", i+1)
		now.Advance(time.Second)
	}

	allowed, err := peer.CheckAndConsume(ctx, "user_1")
	require.NoError(t, err)
	assert.False(t, allowed, "quota is shared between instances")

	// Scores are the server's clock in ms
	score, err := mr.ZScore("test:posts:user_1", mustFirstMember(t, mr))
	require.NoError(t, err)
	assert.Equal(t, float64(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()), score)
}

func mustFirstMember(t *testing.T, mr *miniredis.Miniredis) string {
	t.Helper()
	members, err := mr.ZMembers("test:posts:user_1")
	require.NoError(t, err)
	require.NotEmpty(t, members)
	return members[0]
}
