package metrics

import (
	"sync/atomic"
	"time"
)

// Edge labels for the invocations_total and errors_total counters.
const (
	EdgeLeading  = "leading"
	EdgeTrailing = "trailing"
	EdgeFlush    = "flush"
	EdgeDirect   = "direct"
)

// Recorder records the metrics of one named wrapper. All methods are safe on
// a Recorder whose collection is disabled and cost a single atomic load.
type Recorder struct {
	kind    string
	name    string
	enabled atomic.Bool
	reg     atomic.Pointer[Registry]
}

var _ Instrumentable = (*Recorder)(nil)

// NewRecorder creates a Recorder for a wrapper of the given kind ("debounce",
// "throttle", "once", "memoize") and name.
func NewRecorder(kind, name string, config Config) *Recorder {
	r := &Recorder{kind: kind, name: name}
	_ = r.EnableMetrics(config)
	return r
}

// EnableMetrics enables metrics collection.
func (r *Recorder) EnableMetrics(config Config) error {
	if config.Enabled {
		r.reg.Store(config.resolve())
	}
	r.enabled.Store(config.Enabled)
	return nil
}

// DisableMetrics disables metrics collection.
func (r *Recorder) DisableMetrics() {
	r.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (r *Recorder) MetricsEnabled() bool {
	return r.enabled.Load()
}

func (r *Recorder) registry() *Registry {
	if !r.enabled.Load() {
		return nil
	}
	return r.reg.Load()
}

// Call counts a call made to the wrapper.
func (r *Recorder) Call() {
	if reg := r.registry(); reg != nil {
		reg.Calls.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Invoked counts a run of the underlying function on the given edge.
func (r *Recorder) Invoked(edge string, took time.Duration, err error) {
	reg := r.registry()
	if reg == nil {
		return
	}
	reg.Invocations.WithLabelValues(r.kind, r.name, edge).Inc()
	reg.InvocationDuration.WithLabelValues(r.kind, r.name).Observe(took.Seconds())
	if err != nil {
		reg.Errors.WithLabelValues(r.kind, r.name, edge).Inc()
	}
}

// Suppressed counts a call absorbed without running the function.
func (r *Recorder) Suppressed() {
	if reg := r.registry(); reg != nil {
		reg.Suppressed.WithLabelValues(r.kind, r.name).Inc()
	}
}

// Canceled counts a pending invocation discarded by Cancel.
func (r *Recorder) Canceled() {
	if reg := r.registry(); reg != nil {
		reg.Canceled.WithLabelValues(r.kind, r.name).Inc()
	}
}

// SetPending reports whether a deferred invocation is scheduled.
func (r *Recorder) SetPending(pending bool) {
	if reg := r.registry(); reg != nil {
		v := 0.0
		if pending {
			v = 1
		}
		reg.Pending.WithLabelValues(r.kind, r.name).Set(v)
	}
}

// CacheHit counts a call answered from a cache.
func (r *Recorder) CacheHit() {
	if reg := r.registry(); reg != nil {
		reg.CacheHits.WithLabelValues(r.kind, r.name).Inc()
	}
}

// CacheMiss counts a call that had to run the function.
func (r *Recorder) CacheMiss() {
	if reg := r.registry(); reg != nil {
		reg.CacheMisses.WithLabelValues(r.kind, r.name).Inc()
	}
}

// CacheSize reports the number of cached entries.
func (r *Recorder) CacheSize(n int) {
	if reg := r.registry(); reg != nil {
		reg.CacheEntries.WithLabelValues(r.kind, r.name).Set(float64(n))
	}
}

// CacheReset counts a whole-cache clear.
func (r *Recorder) CacheReset() {
	if reg := r.registry(); reg != nil {
		reg.CacheResets.WithLabelValues(r.kind, r.name).Inc()
	}
}
