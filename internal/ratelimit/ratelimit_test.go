package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expireCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	incr        map[string]int64
	expireCalls []expireCall
	incrErr     error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: make(map[string]int64)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	limiter := &FixedWindow{store: mock, limit: 2, window: time.Minute}

	allowed, err := limiter.Allow(ctx, "accept:u1")
	require.NoError(t, err)
	assert.True(t, allowed)
	require.Len(t, mock.expireCalls, 1)
	assert.Equal(t, expireCall{key: "sharedshop:rate_limit:accept:u1", ttl: time.Minute}, mock.expireCalls[0])

	allowed, err = limiter.Allow(ctx, "accept:u1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Len(t, mock.expireCalls, 1, "expire only on first hit")

	allowed, err = limiter.Allow(ctx, "accept:u1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "accept:u2")
	require.NoError(t, err)
	assert.True(t, allowed, "scopes are independent")

	require.NoError(t, limiter.Ping(ctx))
	require.NoError(t, limiter.Close())
}

func TestFixedWindowError(t *testing.T) {
	mock := newMockCmdable()
	mock.incrErr = errors.New("connection refused")
	limiter := &FixedWindow{store: mock, limit: 2, window: time.Minute}

	allowed, err := limiter.Allow(context.Background(), "accept:u1")
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestNoop(t *testing.T) {
	allowed, err := Noop{}.Allow(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNewFixedWindowRequiresURL(t *testing.T) {
	_, err := NewFixedWindow(context.Background(), "", 1, time.Minute)
	assert.Error(t, err)

	_, err = NewFixedWindow(context.Background(), "://bad", 1, time.Minute)
	assert.Error(t, err)
}
