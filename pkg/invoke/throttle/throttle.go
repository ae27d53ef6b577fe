package throttle

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vnykmshr/goinvoke/internal/invoker"
	"github.com/vnykmshr/goinvoke/pkg/common/clock"
	"github.com/vnykmshr/goinvoke/pkg/common/logging"
	"github.com/vnykmshr/goinvoke/pkg/common/validation"
	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

const module = "throttle"

// Config holds configuration options for creating a new Throttler.
type Config struct {
	// Wait is the minimum interval between two runs of the function.
	Wait time.Duration

	// Leading runs the function synchronously when a call arrives at least
	// Wait after the previous run. Defaults to true in DefaultConfig.
	Leading bool

	// Trailing runs the function at the end of the window with the argument
	// of the latest call made during it. Defaults to true in DefaultConfig.
	Trailing bool

	// Clock provides time and timers. If nil, clock.System is used.
	Clock clock.Clock

	// OnError receives errors (and recovered panics) from trailing
	// invocations. If nil, they are logged at error level on Logger.
	OnError func(error)

	// Logger is used when OnError is nil. If nil, logging.Default() is used.
	Logger *zap.Logger

	// Name identifies the throttler in logs and metrics.
	Name string

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// DefaultConfig returns the default configuration: both edges enabled.
func DefaultConfig() Config {
	return Config{
		Leading:  true,
		Trailing: true,
	}
}

// Throttler runs a function at most once per Wait. It is safe for
// concurrent use.
type Throttler[A any] struct {
	fn       func(A) error
	wait     time.Duration
	leading  bool
	trailing bool
	clock    clock.Clock
	report   func(error)
	metrics  *metrics.Recorder

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	arg     A
	owed    bool
	lastRun time.Time
	ran     bool
}

// New creates a Throttler around fn with both edges enabled.
func New[A any](fn func(A) error, wait time.Duration) (*Throttler[A], error) {
	config := DefaultConfig()
	config.Wait = wait
	return NewWithConfig(fn, config)
}

// NewWithConfig creates a Throttler with custom configuration.
func NewWithConfig[A any](fn func(A) error, config Config) (*Throttler[A], error) {
	if err := validation.ValidateNotNil(module, "fn", fn); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration(module, "wait", config.Wait); err != nil {
		return nil, err
	}
	if err := validation.ValidateEdges(module, config.Leading, config.Trailing); err != nil {
		return nil, err
	}

	return &Throttler[A]{
		fn:       fn,
		wait:     config.Wait,
		leading:  config.Leading,
		trailing: config.Trailing,
		clock:    clock.OrSystem(config.Clock),
		report:   logging.ErrorReporter(module, config.Name, config.OnError, config.Logger),
		metrics:  metrics.NewRecorder(module, config.Name, config.Metrics),
	}, nil
}

// Call runs or schedules the function for arg.
//
// If Leading is enabled and at least Wait has passed since the previous run
// (or there was none), the function runs synchronously and its error is
// returned. Otherwise arg becomes the latest recorded argument and, with
// Trailing enabled, a run is scheduled for the end of the current window.
// Calls inside a window never move the scheduled run.
func (t *Throttler[A]) Call(arg A) error {
	t.metrics.Call()

	t.mu.Lock()
	now := t.clock.Now()
	elapsed := now.Sub(t.lastRun)
	idle := !t.ran || elapsed >= t.wait

	if t.leading && idle {
		superseded := t.owed
		t.disarm()
		t.clearArg()
		t.lastRun = now
		t.ran = true
		t.metrics.SetPending(false)
		t.mu.Unlock()

		if superseded {
			t.metrics.Suppressed()
		}
		return invoker.Sync(t.metrics, metrics.EdgeLeading, t.fn, arg)
	}

	if !t.trailing {
		t.mu.Unlock()
		t.metrics.Suppressed()
		return nil
	}

	replaced := t.owed
	t.arg = arg
	t.owed = true
	if t.timer == nil {
		// Remaining part of the window; an idle throttler without a
		// leading edge runs on the next tick.
		delay := t.wait - elapsed
		if !t.ran || delay < 0 {
			delay = 0
		}
		gen := t.gen
		t.timer = t.clock.AfterFunc(delay, func() { t.fire(gen) })
	}
	t.metrics.SetPending(true)
	t.mu.Unlock()

	if replaced {
		t.metrics.Suppressed()
	}
	return nil
}

// Cancel discards the scheduled trailing run, if any, without running the
// function. The time of the previous run is kept, so spacing is preserved.
func (t *Throttler[A]) Cancel() {
	t.mu.Lock()
	owed := t.owed
	t.disarm()
	t.clearArg()
	t.metrics.SetPending(false)
	t.mu.Unlock()

	if owed {
		t.metrics.Canceled()
	}
}

// Flush runs the scheduled trailing invocation now, synchronously, and
// returns its error. It returns nil if nothing is scheduled.
func (t *Throttler[A]) Flush() error {
	t.mu.Lock()
	arg, owed := t.arg, t.owed
	t.disarm()
	t.clearArg()
	if owed {
		t.lastRun = t.clock.Now()
		t.ran = true
	}
	t.metrics.SetPending(false)
	t.mu.Unlock()

	if !owed {
		return nil
	}
	return invoker.Sync(t.metrics, metrics.EdgeFlush, t.fn, arg)
}

// Pending reports whether a trailing run is scheduled.
func (t *Throttler[A]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// LastRun returns the time of the most recent run and whether there was one.
func (t *Throttler[A]) LastRun() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRun, t.ran
}

// Recorder exposes the metrics recorder for runtime enable/disable.
func (t *Throttler[A]) Recorder() *metrics.Recorder {
	return t.metrics
}

// fire runs the trailing invocation scheduled as generation gen.
func (t *Throttler[A]) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	arg, owed := t.arg, t.owed
	t.timer = nil
	t.clearArg()
	if owed {
		t.lastRun = t.clock.Now()
		t.ran = true
	}
	t.metrics.SetPending(false)
	t.mu.Unlock()

	if owed {
		invoker.Deferred(t.metrics, metrics.EdgeTrailing, t.fn, arg, t.report)
	}
}

// disarm stops the scheduled run and invalidates any callback already in
// flight. Must be called with t.mu held.
func (t *Throttler[A]) disarm() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// clearArg drops the recorded argument. Must be called with t.mu held.
func (t *Throttler[A]) clearArg() {
	var zero A
	t.arg = zero
	t.owed = false
}
