package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vnykmshr/goinvoke/pkg/invoke/memoize"
)

var _ memoize.Backend[string, int] = (*Store[string, int])(nil)

// newTestClient returns a client for REDIS_ADDR (default localhost:6379) or
// skips the test when no server answers.
func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func testKey() string {
	return "goinvoke:test:" + uuid.NewString()
}

func TestNewValidation(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = rdb.Close() }()

	tests := []struct {
		name   string
		config Config
	}{
		{"nil client", Config{Key: "k"}},
		{"empty key", Config{Redis: rdb}},
		{"negative timeout", Config{Redis: rdb, Key: "k", RedisTimeout: -time.Second}},
		{"negative ttl", Config{Redis: rdb, Key: "k", KeyTTL: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[string, int](tt.config)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
		})
	}

	s, err := New[string, int](Config{Redis: rdb, Key: "k"})
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, s.config.RedisTimeout)
}

func TestFieldsDistinguishKeyTypes(t *testing.T) {
	assert.NotEqual(t, field(renderKey(1)), field(renderKey("1")))
	assert.NotEqual(t, field(renderKey(int64(1))), field(renderKey(1)))
	assert.Equal(t, field(renderKey("a")), field(renderKey("a")))
}

func TestRedisErrorUnwrap(t *testing.T) {
	err := error(&RedisError{"load", redis.ErrClosed})
	assert.True(t, errors.Is(err, redis.ErrClosed))
	assert.Equal(t, "redis error in load: "+redis.ErrClosed.Error(), err.Error())
}

func TestUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer func() { _ = rdb.Close() }()

	s, err := New[string, int](Config{Redis: rdb, Key: testKey(), RedisTimeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, _, err = s.Load(context.Background(), "a")
	var rerr *RedisError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "load", rerr.Operation)

	err = s.Save(context.Background(), "a", 1)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "save", rerr.Operation)
}

func TestRoundTrip(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()

	type profile struct {
		Name  string
		Score int
	}
	s, err := New[string, profile](Config{Redis: rdb, Key: testKey(), KeyTTL: time.Minute})
	require.NoError(t, err)
	defer func() { _ = s.Clear(ctx) }()

	_, ok, err := s.Load(ctx, "ada")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "ada", profile{Name: "Ada", Score: 7}))
	got, ok, err := s.Load(ctx, "ada")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile{Name: "Ada", Score: 7}, got)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ttl, err := rdb.TTL(ctx, s.config.Key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, "ada"))
	_, ok, err = s.Load(ctx, "ada")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSharedBetweenMemoizers(t *testing.T) {
	rdb := newTestClient(t)
	ctx := context.Background()
	key := testKey()

	s, err := New[int, int](Config{Redis: rdb, Key: key})
	require.NoError(t, err)
	defer func() { _ = s.Clear(ctx) }()

	calls := 0
	square := func(x int) (int, error) {
		calls++
		return x * x, nil
	}
	cfg := memoize.Config[int, int]{Backend: s, Logger: zap.NewNop()}

	first, err := memoize.NewWithConfig(square, func(x int) int { return x }, cfg)
	require.NoError(t, err)
	v, err := first.Call(9)
	require.NoError(t, err)
	assert.Equal(t, 81, v)

	// A second process would see the stored result without computing.
	second, err := memoize.NewWithConfig(square, func(x int) int { return x }, cfg)
	require.NoError(t, err)
	v, err = second.Call(9)
	require.NoError(t, err)
	assert.Equal(t, 81, v)
	assert.Equal(t, 1, calls)

	require.NoError(t, second.Clear(ctx))
	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
