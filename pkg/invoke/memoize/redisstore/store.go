package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for a Redis-backed memoize store.
type Config struct {
	// Redis client shared by every store in the process
	Redis redis.UniversalClient

	// Key is the Redis hash holding the memoized results
	Key string

	// RedisTimeout is the timeout for each Redis operation
	RedisTimeout time.Duration

	// KeyTTL, if positive, is refreshed on every save. Zero keeps results
	// until Clear.
	KeyTTL time.Duration
}

// DefaultConfig returns a default store configuration.
func DefaultConfig() Config {
	return Config{
		RedisTimeout: 500 * time.Millisecond,
	}
}

// Store keeps memoized results in a single Redis hash. Hash fields are the
// xxhash of the key; values are JSON. It implements memoize.Backend.
//
// Keys are rendered with fmt's %v verb, so they should be values whose
// printed form identifies them across processes. Pointer keys do not.
type Store[K comparable, R any] struct {
	config Config
}

// New creates a Store.
func New[K comparable, R any](config Config) (*Store[K, R], error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	return &Store[K, R]{config: config}, nil
}

func validateConfig(config Config) error {
	if config.Redis == nil {
		return &ConfigError{"redis client is required"}
	}
	if config.Key == "" {
		return &ConfigError{"key is required"}
	}
	if config.RedisTimeout < 0 {
		return &ConfigError{"redis timeout must not be negative"}
	}
	if config.KeyTTL < 0 {
		return &ConfigError{"key ttl must not be negative"}
	}
	return nil
}

// entry is the stored form. The rendered key guards against field hash
// collisions.
type entry[R any] struct {
	Key   string `json:"k"`
	Value R      `json:"v"`
}

func renderKey[K comparable](key K) string {
	return fmt.Sprintf("%T:%v", key, key)
}

func field(rendered string) string {
	return strconv.FormatUint(xxhash.Sum64String(rendered), 16)
}

// Load returns the stored result for key.
func (s *Store[K, R]) Load(ctx context.Context, key K) (R, bool, error) {
	var zero R
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	rendered := renderKey(key)
	raw, err := s.config.Redis.HGet(ctx, s.config.Key, field(rendered)).Bytes()
	if err == redis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, &RedisError{"load", err}
	}

	var e entry[R]
	if err := json.Unmarshal(raw, &e); err != nil {
		return zero, false, &RedisError{"decode", err}
	}
	if e.Key != rendered {
		return zero, false, nil
	}
	return e.Value, true, nil
}

// Save stores value under key.
func (s *Store[K, R]) Save(ctx context.Context, key K, value R) error {
	rendered := renderKey(key)
	raw, err := json.Marshal(entry[R]{Key: rendered, Value: value})
	if err != nil {
		return &RedisError{"encode", err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	pipe := s.config.Redis.TxPipeline()
	pipe.HSet(ctx, s.config.Key, field(rendered), raw)
	if s.config.KeyTTL > 0 {
		pipe.Expire(ctx, s.config.Key, s.config.KeyTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return &RedisError{"save", err}
	}
	return nil
}

// Delete removes the stored result for key.
func (s *Store[K, R]) Delete(ctx context.Context, key K) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	if err := s.config.Redis.HDel(ctx, s.config.Key, field(renderKey(key))).Err(); err != nil {
		return &RedisError{"delete", err}
	}
	return nil
}

// Len returns the number of stored results.
func (s *Store[K, R]) Len(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	n, err := s.config.Redis.HLen(ctx, s.config.Key).Result()
	if err != nil {
		return 0, &RedisError{"len", err}
	}
	return n, nil
}

// Clear removes every stored result.
func (s *Store[K, R]) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	if err := s.config.Redis.Del(ctx, s.config.Key).Err(); err != nil {
		return &RedisError{"clear", err}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "redis memoize store config error: " + e.Message
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
