package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	mr, client := newMiniredisClient(t)
	l := NewFixedWindowLimiter(client, "otp:verify", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Allow(ctx, "a@x.com"))
	}
	assert.ErrorIs(t, l.Allow(ctx, "a@x.com"), ErrRateLimited)

	// other keys are independent
	assert.NoError(t, l.Allow(ctx, "b@x.com"))

	ttl := mr.TTL("otp:verify:a@x.com")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestFixedWindowLimiter_WindowExpires(t *testing.T) {
	mr, client := newMiniredisClient(t)
	l := NewFixedWindowLimiter(client, "otp:resend", 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "a@x.com"))
	assert.ErrorIs(t, l.Allow(ctx, "a@x.com"), ErrRateLimited)

	mr.FastForward(time.Minute + time.Second)
	assert.NoError(t, l.Allow(ctx, "a@x.com"))
}

func TestFixedWindowLimiter_Reset(t *testing.T) {
	_, client := newMiniredisClient(t)
	l := NewFixedWindowLimiter(client, "otp:verify", 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "a@x.com"))
	require.ErrorIs(t, l.Allow(ctx, "a@x.com"), ErrRateLimited)
	require.NoError(t, l.Reset(ctx, "a@x.com"))
	assert.NoError(t, l.Allow(ctx, "a@x.com"))
}

func TestFixedWindowLimiter_Unavailable(t *testing.T) {
	mr, client := newMiniredisClient(t)
	l := NewFixedWindowLimiter(client, "otp:verify", 1, time.Minute)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.ErrorIs(t, l.Allow(ctx, "a@x.com"), ErrLimiterUnavailable)
	assert.ErrorIs(t, l.Reset(ctx, "a@x.com"), ErrLimiterUnavailable)
}
