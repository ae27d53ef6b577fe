package memoize

import (
	"context"

	"go.uber.org/zap"

	"github.com/vnykmshr/goinvoke/internal/invoker"
	"github.com/vnykmshr/goinvoke/pkg/common/logging"
	"github.com/vnykmshr/goinvoke/pkg/common/validation"
	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

const module = "memoize"

// Backend is an optional second cache tier, such as redisstore.Store, that
// outlives the process and can be shared between instances. It is consulted
// after a local miss and written after every successful computation.
type Backend[K comparable, R any] interface {
	Load(ctx context.Context, key K) (R, bool, error)
	Save(ctx context.Context, key K, value R) error
	Clear(ctx context.Context) error
}

// Config holds configuration options for creating a new Memoizer.
type Config[K comparable, R any] struct {
	// Name identifies the memoizer in logs and metrics.
	Name string

	// Backend is an optional shared cache tier. Backend failures never fail
	// a call: a failed load counts as a miss and a failed save is logged.
	Backend Backend[K, R]

	// Logger receives backend failures. If nil, logging.Default() is used.
	Logger *zap.Logger

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// Memoizer caches the results of a function by a key derived from its
// argument. It is safe for concurrent use.
type Memoizer[A any, K comparable, R any] struct {
	fn       func(A) (R, error)
	resolver func(A) K
	cache    *Cache[K, R]
	backend  Backend[K, R]
	logger   *zap.Logger
	name     string
	metrics  *metrics.Recorder
	flight   flight[K, R]
}

// New memoizes fn keyed by its argument. Keys compare with Go equality:
// by value for scalars, strings and structs, by identity for pointers.
func New[K comparable, R any](fn func(K) (R, error)) (*Memoizer[K, K, R], error) {
	return NewWithConfig(fn, identity[K], Config[K, R]{})
}

// NewWithResolver memoizes fn keyed by resolver(arg).
func NewWithResolver[A any, K comparable, R any](fn func(A) (R, error), resolver func(A) K) (*Memoizer[A, K, R], error) {
	return NewWithConfig(fn, resolver, Config[K, R]{})
}

// NewWithConfig creates a Memoizer with custom configuration. A nil resolver
// is rejected; use New for argument-keyed memoization.
func NewWithConfig[A any, K comparable, R any](fn func(A) (R, error), resolver func(A) K, config Config[K, R]) (*Memoizer[A, K, R], error) {
	if err := validation.ValidateNotNil(module, "fn", fn); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotNil(module, "resolver", resolver); err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder(module, config.Name, config.Metrics)
	return &Memoizer[A, K, R]{
		fn:       fn,
		resolver: resolver,
		cache:    newCache[K, R](rec),
		backend:  config.Backend,
		logger:   config.Logger,
		name:     config.Name,
		metrics:  rec,
	}, nil
}

func identity[K any](k K) K { return k }

// Call returns the cached result for arg's key, computing it with the
// wrapped function on a miss. Failed computations are returned and not
// cached, so the next call with the same key retries.
func (m *Memoizer[A, K, R]) Call(arg A) (R, error) {
	return m.CallContext(context.Background(), arg)
}

// CallContext is Call with a context for the backend round trips.
func (m *Memoizer[A, K, R]) CallContext(ctx context.Context, arg A) (R, error) {
	m.metrics.Call()
	key := m.resolver(arg)

	if v, ok := m.cache.Get(key); ok {
		m.metrics.CacheHit()
		return v, nil
	}

	v, err, shared := m.flight.do(key, func() (R, error) {
		// Another caller may have filled the entry between the lookup and
		// joining the flight.
		if v, ok := m.cache.Get(key); ok {
			m.metrics.CacheHit()
			return v, nil
		}
		if v, ok := m.load(ctx, key); ok {
			m.metrics.CacheHit()
			m.cache.Set(key, v)
			return v, nil
		}

		m.metrics.CacheMiss()
		v, err := m.invoke(arg)
		if err != nil {
			return v, err
		}
		m.cache.Set(key, v)
		m.save(ctx, key, v)
		return v, nil
	})
	if shared {
		m.metrics.Suppressed()
	}
	return v, err
}

// invoke runs fn and records the run, including one that panics.
func (m *Memoizer[A, K, R]) invoke(arg A) (R, error) {
	var v R
	err := invoker.Sync(m.metrics, metrics.EdgeDirect, func(a A) error {
		var err error
		v, err = m.fn(a)
		return err
	}, arg)
	return v, err
}

// Cache returns the local cache mapping.
func (m *Memoizer[A, K, R]) Cache() *Cache[K, R] {
	return m.cache
}

// Clear empties the local cache and, if configured, the backend.
func (m *Memoizer[A, K, R]) Clear(ctx context.Context) error {
	m.cache.Clear()
	if m.backend == nil {
		return nil
	}
	return m.backend.Clear(ctx)
}

// Recorder exposes the metrics recorder for runtime enable/disable.
func (m *Memoizer[A, K, R]) Recorder() *metrics.Recorder {
	return m.metrics
}

func (m *Memoizer[A, K, R]) load(ctx context.Context, key K) (R, bool) {
	var zero R
	if m.backend == nil {
		return zero, false
	}
	v, ok, err := m.backend.Load(ctx, key)
	if err != nil {
		logging.OrDefault(m.logger).Warn("memoize backend load failed",
			zap.String("name", m.name),
			zap.Error(err),
		)
		return zero, false
	}
	return v, ok
}

func (m *Memoizer[A, K, R]) save(ctx context.Context, key K, v R) {
	if m.backend == nil {
		return
	}
	if err := m.backend.Save(ctx, key, v); err != nil {
		logging.OrDefault(m.logger).Warn("memoize backend save failed",
			zap.String("name", m.name),
			zap.Error(err),
		)
	}
}
