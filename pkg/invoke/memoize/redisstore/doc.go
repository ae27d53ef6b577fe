// Package redisstore provides a Redis-backed second tier for memoize.
//
// Results computed by one process become visible to every process sharing
// the same Redis hash, and survive restarts:
//
//	store, _ := redisstore.New[string, Profile](redisstore.Config{
//		Redis: rdb,
//		Key:   "memo:profiles",
//	})
//	profiles, _ := memoize.NewWithConfig(fetchProfile, resolve, memoize.Config[string, Profile]{
//		Name:    "profiles",
//		Backend: store,
//	})
//
// Redis failures never fail a memoized call; the memoizer logs them and
// falls back to computing locally.
package redisstore
