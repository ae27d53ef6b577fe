package debounce

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

const module = "debounce"

// Config holds configuration options for creating a new Debouncer.
type Config struct {
	// Wait is the quiet period that must elapse after the last call before
	// the trailing invocation fires.
	Wait time.Duration

	// Leading invokes the function synchronously on the first call of a
	// burst, when no quiet-period timer is armed.
	Leading bool

	// Trailing invokes the function once the quiet period elapses, with the
	// argument of the latest call. Defaults to true in DefaultConfig.
	Trailing bool

	// Clock provides time and timers. If nil, clock.System is used.
	Clock clock.Clock

	// OnError receives errors (and recovered panics) from trailing
	// invocations. If nil, they are logged at error level on Logger.
	OnError func(error)

	// Logger is used when OnError is nil. If nil, logging.Default() is used.
	Logger *zap.Logger

	// Name identifies the debouncer in logs and metrics.
	Name string

	// Metrics controls Prometheus instrumentation.
	Metrics metrics.Config
}

// DefaultConfig returns the default configuration: trailing edge only.
func DefaultConfig() Config {
	return Config{
		Leading:  false,
		Trailing: true,
	}
}

// Debouncer delays invoking a function until a quiet period has elapsed
// since the last call. It is safe for concurrent use.
type Debouncer[A any] struct {
	fn       func(A) error
	wait     time.Duration
	leading  bool
	trailing bool
	clock    clock.Clock
	report   func(error)
	metrics  *metrics.Recorder

	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
	arg   A
	owed  bool
}

// New creates a trailing-edge Debouncer around fn with the given quiet period.
func New[A any](fn func(A) error, wait time.Duration) (*Debouncer[A], error) {
	config := DefaultConfig()
	config.Wait = wait
	return NewWithConfig(fn, config)
}

// NewWithConfig creates a Debouncer with custom configuration.
func NewWithConfig[A any](fn func(A) error, config Config) (*Debouncer[A], error) {
	if err := validation.ValidateNotNil(module, "fn", fn); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration(module, "wait", config.Wait); err != nil {
		return nil, err
	}
	if err := validation.ValidateEdges(module, config.Leading, config.Trailing); err != nil {
		return nil, err
	}

	return &Debouncer[A]{
		fn:       fn,
		wait:     config.Wait,
		leading:  config.Leading,
		trailing: config.Trailing,
		clock:    clock.OrSystem(config.Clock),
		report:   logging.ErrorReporter(module, config.Name, config.OnError, config.Logger),
		metrics:  metrics.NewRecorder(module, config.Name, config.Metrics),
	}, nil
}

// Call records arg as the latest call and restarts the quiet period.
//
// With Leading enabled and no quiet period running, the function is invoked
// synchronously with arg and its error is returned. Otherwise Call returns
// nil and the invocation, if any, happens on the trailing edge.
func (d *Debouncer[A]) Call(arg A) error {
	d.metrics.Call()

	d.mu.Lock()
	callNow := d.leading && d.timer == nil
	replaced := d.owed

	d.arm()
	if callNow {
		// The leading run consumes arg; the trailing edge only fires for
		// calls that arrive after it.
		d.clearArg()
	} else {
		d.arg = arg
		d.owed = true
	}
	d.metrics.SetPending(true)
	d.mu.Unlock()

	if replaced {
		d.metrics.Suppressed()
	}
	if callNow {
		return invoker.Sync(d.metrics, metrics.EdgeLeading, d.fn, arg)
	}
	return nil
}

// Cancel discards the pending invocation, if any, without running the
// function. The next call starts a fresh burst.
func (d *Debouncer[A]) Cancel() {
	d.mu.Lock()
	owed := d.owed
	d.disarm()
	d.clearArg()
	d.metrics.SetPending(false)
	d.mu.Unlock()

	if owed {
		d.metrics.Canceled()
	}
}

// Flush ends the current quiet period immediately. If a trailing
// invocation is owed it runs synchronously and its error is returned.
func (d *Debouncer[A]) Flush() error {
	d.mu.Lock()
	arg, owed := d.arg, d.owed
	d.disarm()
	d.clearArg()
	d.metrics.SetPending(false)
	d.mu.Unlock()

	if !owed {
		return nil
	}
	if !d.trailing {
		d.metrics.Suppressed()
		return nil
	}
	return invoker.Sync(d.metrics, metrics.EdgeFlush, d.fn, arg)
}

// Pending reports whether a quiet period is currently running.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Recorder exposes the metrics recorder for runtime enable/disable.
func (d *Debouncer[A]) Recorder() *metrics.Recorder {
	return d.metrics
}

// fire runs when the quiet period of generation gen elapses.
func (d *Debouncer[A]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		// Re-armed or canceled after this timer fired but before it got the lock.
		d.mu.Unlock()
		return
	}
	arg, owed := d.arg, d.owed
	d.timer = nil
	d.clearArg()
	d.metrics.SetPending(false)
	d.mu.Unlock()

	if !owed {
		return
	}
	if !d.trailing {
		d.metrics.Suppressed()
		return
	}
	invoker.Deferred(d.metrics, metrics.EdgeTrailing, d.fn, arg, d.report)
}

// arm replaces any running timer with a new one. Must be called with d.mu held.
func (d *Debouncer[A]) arm() {
	d.disarm()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// disarm stops the running timer and invalidates any callback already in
// flight. Must be called with d.mu held.
func (d *Debouncer[A]) disarm() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// clearArg drops the recorded argument. Must be called with d.mu held.
func (d *Debouncer[A]) clearArg() {
	var zero A
	d.arg = zero
	d.owed = false
}
