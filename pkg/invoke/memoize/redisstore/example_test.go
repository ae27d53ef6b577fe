package redisstore_test

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/goinvoke/pkg/invoke/memoize"
	"github.com/vnykmshr/goinvoke/pkg/invoke/memoize/redisstore"
)

// Example shows a memoizer whose results are shared through Redis.
func Example() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	store, err := redisstore.New[string, int](redisstore.Config{
		Redis: rdb,
		Key:   "example:wordlen",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = store.Clear(ctx) }()

	wordLen, _ := memoize.NewWithConfig(func(s string) (int, error) {
		return len(s), nil
	}, func(s string) string { return s }, memoize.Config[string, int]{
		Name:    "wordlen",
		Backend: store,
	})

	n, _ := wordLen.CallContext(ctx, "throttle")
	fmt.Println(n)
}
