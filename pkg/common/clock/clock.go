// Package clock abstracts the time source and deferred callbacks used by the
// timer-driven wrappers so they can be driven by virtual time in tests.
package clock

import "time"

// Timer is a handle to a deferred callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Clock provides the current time and schedules deferred callbacks.
type Clock interface {
	Now() time.Time

	// AfterFunc runs f in its own goroutine after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// System implements Clock using the system time and runtime timers.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// OrSystem returns c, or System if c is nil.
func OrSystem(c Clock) Clock {
	if c == nil {
		return System{}
	}
	return c
}
