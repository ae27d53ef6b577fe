// Package once wraps a function so that it runs at most once; every later
// call replays the result of the first.
//
// Unlike sync.OnceValues, the wrapped function takes an argument: the
// argument of the first call is used and the arguments of later calls are
// ignored. A first call that fails is not retried; its error is replayed
// together with its result.
package once

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/goinvoke/pkg/common/validation"
	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

const module = "once"

// Config holds configuration options for creating a new Once.
type Config struct {
	// Name identifies the wrapper in metrics.
	Name string

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// Once runs a function on its first call and replays the stored result.
// It is safe for concurrent use; concurrent first callers block until the
// single run completes.
type Once[A, R any] struct {
	fn      func(A) (R, error)
	metrics *metrics.Recorder

	once   sync.Once
	done   atomic.Bool
	result R
	err    error
	pval   interface{}
}

// New creates a Once around fn.
func New[A, R any](fn func(A) (R, error)) (*Once[A, R], error) {
	return NewWithConfig(fn, Config{})
}

// NewWithConfig creates a Once with custom configuration.
func NewWithConfig[A, R any](fn func(A) (R, error), config Config) (*Once[A, R], error) {
	if err := validation.ValidateNotNil(module, "fn", fn); err != nil {
		return nil, err
	}
	return &Once[A, R]{
		fn:      fn,
		metrics: metrics.NewRecorder(module, config.Name, config.Metrics),
	}, nil
}

// Call runs the function with arg on the first call and returns its result
// and error. Later calls return the same pair without running the function.
// If the first run panicked, every call re-panics with the same value.
func (o *Once[A, R]) Call(arg A) (R, error) {
	o.metrics.Call()

	ran := false
	o.once.Do(func() {
		ran = true
		o.run(arg)
	})
	if !ran {
		o.metrics.Suppressed()
	}

	if o.pval != nil {
		panic(o.pval)
	}
	return o.result, o.err
}

func (o *Once[A, R]) run(arg A) {
	start := time.Now()
	defer func() {
		o.done.Store(true)
		if v := recover(); v != nil {
			o.pval = v
			o.metrics.Invoked(metrics.EdgeDirect, time.Since(start), errPanicked)
		}
	}()

	o.result, o.err = o.fn(arg)
	o.metrics.Invoked(metrics.EdgeDirect, time.Since(start), o.err)
}

// Done reports whether the function has already run.
func (o *Once[A, R]) Done() bool {
	return o.done.Load()
}

// Recorder exposes the metrics recorder for runtime enable/disable.
func (o *Once[A, R]) Recorder() *metrics.Recorder {
	return o.metrics
}

// Func wraps fn in a Once and returns its Call method. It panics if fn is nil.
func Func[A, R any](fn func(A) (R, error)) func(A) (R, error) {
	o, err := New(fn)
	if err != nil {
		panic(err)
	}
	return o.Call
}

// Value wraps an argument-less fn. It panics if fn is nil.
func Value[R any](fn func() (R, error)) func() (R, error) {
	if fn == nil {
		panic(validation.ValidateNotNil(module, "fn", fn))
	}
	call := Func(func(struct{}) (R, error) { return fn() })
	return func() (R, error) { return call(struct{}{}) }
}
