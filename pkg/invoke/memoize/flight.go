package memoize

import (
	"sync"

	gferrors "github.com/vnykmshr/goinvoke/pkg/common/errors"
)

// call is one in-flight computation shared by concurrent callers of a key.
type call[R any] struct {
	wg  sync.WaitGroup
	val R
	err error
}

// flight deduplicates concurrent computations per key. It is singleflight
// keyed by any comparable type instead of string, so pointer keys keep
// identity semantics.
type flight[K comparable, R any] struct {
	mu    sync.Mutex
	calls map[K]*call[R]
}

// do runs fn once for all callers that arrive while it is running. shared
// reports whether the result came from another caller's run.
func (f *flight[K, R]) do(key K, fn func() (R, error)) (val R, err error, shared bool) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[K]*call[R])
	}
	if c, ok := f.calls[key]; ok {
		f.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}
	c := new(call[R])
	c.wg.Add(1)
	f.calls[key] = c
	f.mu.Unlock()

	finish := func() {
		f.mu.Lock()
		delete(f.calls, key)
		f.mu.Unlock()
		c.wg.Done()
	}
	defer func() {
		if v := recover(); v != nil {
			// Waiters see the panic as an error; the leader keeps panicking.
			c.err = gferrors.NewPanicError(v)
			finish()
			panic(v)
		}
		finish()
	}()

	c.val, c.err = fn()
	return c.val, c.err, false
}
