// Package ratelimit throttles abuse-prone operations per caller.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "sharedshop:rate_limit"

// Limiter decides whether one more call in scope is allowed.
type Limiter interface {
	Allow(ctx context.Context, scope string) (bool, error)
}

// Noop allows everything. Used when no Redis is configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// FixedWindow counts calls per scope in Redis and resets the count every window.
type FixedWindow struct {
	store  cmdable
	raw    *redis.Client
	limit  int64
	window time.Duration
}

var _ Limiter = (*FixedWindow)(nil)

// NewFixedWindow connects to the Redis at url and verifies connectivity.
func NewFixedWindow(ctx context.Context, url string, limit int64, window time.Duration) (*FixedWindow, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &FixedWindow{store: raw, raw: raw, limit: limit, window: window}, nil
}

// Allow increments the scope's counter, setting its expiry on the first hit
// of a window, and reports whether the count is within the limit.
func (f *FixedWindow) Allow(ctx context.Context, scope string) (bool, error) {
	key := Key(scope)
	count, err := f.store.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 && f.window > 0 {
		if err := f.store.Expire(ctx, key, f.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count <= f.limit, nil
}

// Ping checks the Redis connection.
func (f *FixedWindow) Ping(ctx context.Context) error {
	return f.store.Ping(ctx).Err()
}

// Close releases the underlying client.
func (f *FixedWindow) Close() error {
	if f.raw == nil {
		return nil
	}
	return f.raw.Close()
}

// Key returns the namespaced counter key for scope.
func Key(scope string) string {
	return strings.Join([]string{keyNamespace, scope}, ":")
}
