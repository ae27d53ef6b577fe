/*
Package memoize caches the results of a function by a key derived from its
argument.

	square, _ := memoize.New(func(n int) (int, error) { return n * n, nil })
	square.Call(2) // computes
	square.Call(2) // cached
	square.Call(3) // computes

By default the key is the argument itself. NewWithResolver derives it with a
caller-supplied function instead, for arguments that are not comparable or
when only part of the argument matters:

	byID, _ := memoize.NewWithResolver(fetchUser, func(r Request) string {
		return r.UserID
	})

For a given key the function runs at most once: concurrent misses share a
single run. Results of failed runs are not cached, so the next call retries.

The cache is unbounded and has no replacement policy. It is exposed through
Cache so callers can inspect, seed, or clear it. A Resetter clears caches on
a cron schedule.

An optional Backend adds a second tier shared between processes; see the
redisstore subpackage.
*/
package memoize
