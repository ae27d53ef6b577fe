package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestForSharesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	a := For(reg, "")
	b := NewRegistry(reg)
	if a != b {
		t.Error("same registerer and namespace should share one Registry")
	}

	c := For(reg, "other")
	if a == c {
		t.Error("different namespace should get its own Registry")
	}
}

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder("throttle", "scroll", Config{Enabled: true, Registry: reg})
	r := NewRegistry(reg)

	rec.Call()
	rec.Call()
	rec.Call()
	rec.Invoked(EdgeLeading, time.Millisecond, nil)
	rec.Invoked(EdgeTrailing, time.Millisecond, errors.New("boom"))
	rec.Suppressed()
	rec.Canceled()
	rec.SetPending(true)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"calls", r.Calls.WithLabelValues("throttle", "scroll"), 3},
		{"leading", r.Invocations.WithLabelValues("throttle", "scroll", EdgeLeading), 1},
		{"trailing", r.Invocations.WithLabelValues("throttle", "scroll", EdgeTrailing), 1},
		{"trailing errors", r.Errors.WithLabelValues("throttle", "scroll", EdgeTrailing), 1},
		{"leading errors", r.Errors.WithLabelValues("throttle", "scroll", EdgeLeading), 0},
		{"suppressed", r.Suppressed.WithLabelValues("throttle", "scroll"), 1},
		{"canceled", r.Canceled.WithLabelValues("throttle", "scroll"), 1},
		{"pending", r.Pending.WithLabelValues("throttle", "scroll"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecorderDisabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder("memoize", "off", Config{Enabled: false, Registry: reg})

	if rec.MetricsEnabled() {
		t.Fatal("metrics should be disabled")
	}

	rec.Call()
	rec.CacheHit()
	rec.CacheSize(10)

	count, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 0 {
		t.Errorf("disabled recorder should not register series, got %d", count)
	}
}

func TestRecorderEnableDisable(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder("memoize", "toggle", Config{Enabled: true, Registry: reg})
	r := NewRegistry(reg)

	rec.CacheHit()
	rec.DisableMetrics()
	rec.CacheHit()
	if err := rec.EnableMetrics(Config{Enabled: true, Registry: reg}); err != nil {
		t.Fatalf("EnableMetrics: %v", err)
	}
	rec.CacheHit()
	rec.CacheReset()

	if got := testutil.ToFloat64(r.CacheHits.WithLabelValues("memoize", "toggle")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheResets.WithLabelValues("memoize", "toggle")); got != 1 {
		t.Errorf("resets = %v, want 1", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("default config should be enabled")
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("namespace = %q, want %q", cfg.Namespace, DefaultNamespace)
	}
	if cfg.resolve() != DefaultRegistry {
		t.Error("default config should resolve to DefaultRegistry")
	}
}
