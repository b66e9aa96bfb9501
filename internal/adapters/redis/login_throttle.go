package redis

// Package redis provides Redis-based adapters for the timetracker.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottleOptions configures LoginThrottle.
type LoginThrottleOptions struct {
	// MaxAttempts is the number of failures after which further logins are refused.
	MaxAttempts int
	// Window is how long failures are remembered, counted from the first failure.
	Window time.Duration
	Prefix string
}

// LoginThrottle counts failed logins per username in Redis.
// The counter expires Window after the first failure.
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a Redis-backed login throttle.
func NewLoginThrottle(client redis.UniversalClient, opts LoginThrottleOptions) (*LoginThrottle, error) {
	if opts.MaxAttempts <= 0 {
		return nil, errors.New("max attempts must be positive")
	}
	if opts.Window <= 0 {
		return nil, errors.New("window must be positive")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "login:fail:"
	}
	return &LoginThrottle{
		client:      client,
		prefix:      prefix,
		maxAttempts: int64(opts.MaxAttempts),
		window:      opts.Window,
	}, nil
}

func (l *LoginThrottle) key(username string) string {
	return l.prefix + strings.ToLower(strings.TrimSpace(username))
}

// Allow reports whether username is still below the failure limit.
func (l *LoginThrottle) Allow(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Fail records one failed attempt for username.
func (l *LoginThrottle) Fail(ctx context.Context, username string) error {
	key := l.key(username)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("redis expire: %w", err)
		}
	}
	return nil
}

// Reset forgets all failures of username.
func (l *LoginThrottle) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NoopLoginThrottle never throttles. It is used when Redis is disabled.
type NoopLoginThrottle struct{}

func (NoopLoginThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (NoopLoginThrottle) Fail(context.Context, string) error          { return nil }
func (NoopLoginThrottle) Reset(context.Context, string) error         { return nil }
