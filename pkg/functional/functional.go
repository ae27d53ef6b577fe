// Package functional provides small combinators over plain Go functions:
// composition, currying, partial application and delayed invocation.
package functional

import (
	"time"

	"github.com/vnykmshr/goinvoke/pkg/common/clock"
)

// Compose returns a function applying fns from right to left. With no
// functions it returns the identity.
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(v T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			v = fns[i](v)
		}
		return v
	}
}

// Pipe returns a function applying fns from left to right. With no
// functions it returns the identity.
func Pipe[T any](fns ...func(T) T) func(T) T {
	return func(v T) T {
		for _, fn := range fns {
			v = fn(v)
		}
		return v
	}
}

// Curry2 turns a two-argument function into a chain of one-argument ones.
func Curry2[A, B, R any](fn func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return fn(a, b)
		}
	}
}

// Curry3 is Curry2 for three arguments.
func Curry3[A, B, C, R any](fn func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R {
				return fn(a, b, c)
			}
		}
	}
}

// Partial fixes the first argument of fn.
func Partial[A, B, R any](fn func(A, B) R, a A) func(B) R {
	return func(b B) R {
		return fn(a, b)
	}
}

// Delay runs fn(arg) once after wait on c, or the system clock if c is nil.
// Stopping the returned timer before it fires prevents the call. A negative
// wait is treated as zero.
func Delay[A any](c clock.Clock, wait time.Duration, fn func(A), arg A) clock.Timer {
	if wait < 0 {
		wait = 0
	}
	return clock.OrSystem(c).AfterFunc(wait, func() { fn(arg) })
}
