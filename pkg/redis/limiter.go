package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited is returned once a key exceeds its window budget
	ErrRateLimited = errors.New("rate limited")
	// ErrLimiterUnavailable wraps redis failures
	ErrLimiterUnavailable = errors.New("rate limiter unavailable")
)

// FixedWindowLimiter counts hits per key in fixed windows using INCR + EXPIRE
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter allows at most limit hits per key within window
func NewFixedWindowLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records a hit for key and reports ErrRateLimited when over budget
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) error {
	fullKey := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, fullKey, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
		}
	}

	if count > l.limit {
		return ErrRateLimited
	}
	return nil
}

// Reset clears the counter for key
func (l *FixedWindowLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+":"+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}
	return nil
}
