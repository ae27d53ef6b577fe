package memoize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vnykmshr/goinvoke/internal/testutil"
	gferrors "github.com/vnykmshr/goinvoke/pkg/common/errors"
)

func TestNewResetterRejectsBadSpec(t *testing.T) {
	for _, spec := range []string{"", "every minute", "* * *"} {
		_, err := NewResetter(spec, zap.NewNop())
		testutil.AssertError(t, err)
		if !gferrors.IsValidationError(err) {
			t.Errorf("NewResetter(%q): expected ValidationError, got %T", spec, err)
		}
	}
}

func TestResetterRunNow(t *testing.T) {
	m, err := New(func(x int) (int, error) { return x, nil })
	testutil.AssertNoError(t, err)
	_, _ = m.Call(1)
	_, _ = m.Call(2)

	cleared := 0
	r, err := NewResetter("@hourly", zap.NewNop(), m.Cache())
	testutil.AssertNoError(t, err)
	r.Add(ClearFunc(func() { cleared++ }))

	r.RunNow()
	testutil.AssertEqual(t, m.Cache().Len(), 0)
	testutil.AssertEqual(t, cleared, 1)
	testutil.AssertEqual(t, r.Resets(), 1)
}

func TestResetterSchedule(t *testing.T) {
	r, err := NewResetter("0 0 * * * *", zap.NewNop())
	testutil.AssertNoError(t, err)

	r.Start()
	defer func() { <-r.Stop().Done() }()

	require.Eventually(t, func() bool { return !r.Next().IsZero() }, time.Second, 5*time.Millisecond)
	next := r.Next()
	if next.Minute() != 0 || next.Second() != 0 {
		t.Errorf("next reset %v is not on the hour", next)
	}
	if !next.After(time.Now()) {
		t.Errorf("next reset %v is not in the future", next)
	}
}

func TestResetterFires(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real cron tick")
	}

	m, err := New(func(x int) (int, error) { return x, nil })
	testutil.AssertNoError(t, err)
	_, _ = m.Call(1)

	r, err := NewResetter("@every 1s", zap.NewNop(), m.Cache())
	testutil.AssertNoError(t, err)
	r.Start()
	defer func() { <-r.Stop().Done() }()

	require.Eventually(t, func() bool { return r.Resets() >= 1 }, 3*time.Second, 20*time.Millisecond)
	testutil.AssertEqual(t, m.Cache().Len(), 0)
}
