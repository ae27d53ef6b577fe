/*
Package throttle limits how often a function runs: at most once per Wait.

	t, err := throttle.New(func(pos int) error {
		return render(pos)
	}, 100*time.Millisecond)

	t.Call(10) // runs now (leading edge)
	t.Call(20) // recorded
	t.Call(30) // replaces 20; render(30) runs when the window closes

With the defaults (Leading and Trailing), calls at t=0, 30ms and 60ms with a
100ms Wait run the function twice: at 0 with the first argument and at 100ms
with the argument of the call at 60ms.

The trailing run is scheduled for the remaining part of the window, measured
from the previous run, and is not moved by later calls. A throttler with
only the trailing edge that has been idle for at least Wait schedules the
run with no delay.

Errors from leading runs are returned by Call. Errors and recovered panics
from trailing runs go to Config.OnError, or are logged with zap.
*/
package throttle
