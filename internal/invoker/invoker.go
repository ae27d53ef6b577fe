// Package invoker runs wrapped functions on behalf of the timer-driven
// wrappers and accounts for each run in their metrics.
package invoker

import (
	"errors"
	"time"

	gferrors "github.com/vnykmshr/goinvoke/pkg/common/errors"
	"github.com/vnykmshr/goinvoke/pkg/metrics"
)

// errPanicked is only ever recorded in metrics; the panic itself keeps
// unwinding to the caller.
var errPanicked = errors.New("panicked")

// Sync runs fn(arg) on the caller's goroutine. Errors are returned and panics
// propagate to the caller unchanged.
func Sync[A any](rec *metrics.Recorder, edge string, fn func(A) error, arg A) error {
	start := time.Now()
	panicked := true
	defer func() {
		if panicked {
			rec.Invoked(edge, time.Since(start), errPanicked)
		}
	}()

	err := fn(arg)
	panicked = false
	rec.Invoked(edge, time.Since(start), err)
	return err
}

// Deferred runs fn(arg) from a timer callback. There is no caller to return
// to, so a returned error or a recovered panic is passed to report.
func Deferred[A any](rec *metrics.Recorder, edge string, fn func(A) error, arg A, report func(error)) {
	start := time.Now()
	defer func() {
		if v := recover(); v != nil {
			perr := gferrors.NewPanicError(v)
			rec.Invoked(edge, time.Since(start), perr)
			report(perr)
		}
	}()

	if err := fn(arg); err != nil {
		rec.Invoked(edge, time.Since(start), err)
		report(err)
		return
	}
	rec.Invoked(edge, time.Since(start), nil)
}
