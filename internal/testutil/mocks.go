package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/vnykmshr/goinvoke/pkg/common/clock"
)

// MockClock implements clock.Clock with controllable time. Callbacks
// registered with AfterFunc run synchronously on the goroutine calling
// Advance, in deadline order, with Now reporting the deadline of the
// callback being run.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*mockTimer
}

var _ clock.Clock = (*MockClock)(nil)

type mockTimer struct {
	c        *MockClock
	deadline time.Time
	seq      uint64
	f        func()
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the mock time reaches Now()+d.
func (m *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &mockTimer{c: m, deadline: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Stop removes the timer if it has not fired yet.
func (t *mockTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	for i, other := range t.c.timers {
		if other == t {
			t.c.timers = append(t.c.timers[:i], t.c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the mock clock forward by d, firing every timer whose
// deadline falls inside the interval. Timers armed by a firing callback are
// fired too if their deadline is still inside the interval.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.popDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.deadline
		m.mu.Unlock()

		next.f()
	}
}

// Set moves the mock clock to t, firing due timers like Advance.
func (m *MockClock) Set(t time.Time) {
	m.Advance(t.Sub(m.Now()))
}

// Pending returns the number of armed timers.
func (m *MockClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// popDue removes and returns the earliest timer due at or before target.
// Must be called with m.mu held.
func (m *MockClock) popDue(target time.Time) *mockTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if a.deadline.Equal(b.deadline) {
			return a.seq < b.seq
		}
		return a.deadline.Before(b.deadline)
	})
	first := m.timers[0]
	if first.deadline.After(target) {
		return nil
	}
	m.timers = m.timers[1:]
	return first
}

// Call is one invocation observed by a Recorder.
type Call[A any] struct {
	Arg A
	At  time.Time
}

// Recorder records invocations of a wrapped function. It is safe for
// concurrent use.
type Recorder[A any] struct {
	mu    sync.Mutex
	clock clock.Clock
	calls []Call[A]
	err   error
}

// NewRecorder creates a Recorder that timestamps calls with c (or the
// system clock if c is nil).
func NewRecorder[A any](c clock.Clock) *Recorder[A] {
	return &Recorder[A]{clock: clock.OrSystem(c)}
}

// Func returns a function suitable for wrapping. It records its argument and
// returns the error configured with FailWith.
func (r *Recorder[A]) Func() func(A) error {
	return func(arg A) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, Call[A]{Arg: arg, At: r.clock.Now()})
		return r.err
	}
}

// FailWith makes subsequent invocations return err.
func (r *Recorder[A]) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Count returns the number of recorded invocations.
func (r *Recorder[A]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder[A]) Calls() []Call[A] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call[A], len(r.calls))
	copy(out, r.calls)
	return out
}

// Args returns the recorded arguments in invocation order.
func (r *Recorder[A]) Args() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]A, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Arg
	}
	return out
}
