/*
Package goinvoke provides wrappers that control when and how often a function
runs.

Rate-controlled invocation (pkg/invoke):
  - debounce: Run once calls stop arriving for a wait period
  - throttle: Run at most once per wait period
  - once: Run on the first call only and replay its result
  - memoize: Cache results by a key derived from the argument
  - memoize/redisstore: Share memoized results through Redis

Supporting packages:
  - functional: Compose, Pipe, Curry and Delay helpers
  - policy: Debounce and throttle settings from YAML
  - metrics: Prometheus instrumentation shared by all wrappers

Example usage:

	import (
		"github.com/vnykmshr/goinvoke/pkg/invoke/debounce"
		"github.com/vnykmshr/goinvoke/pkg/invoke/memoize"
	)

	search, _ := debounce.New(runSearch, 300*time.Millisecond)
	lookup, _ := memoize.New(fetchUser)

	for q := range keystrokes {
		_ = search.Call(q) // runs 300ms after the last keystroke
	}
	user, err := lookup.Call(42) // computed once, then cached
*/
package goinvoke
