package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates recording invocation metrics.
func Example_basicUsage() {
	// Create a separate registry for this example
	testRegistry := prometheus.NewRegistry()
	rec := NewRecorder("debounce", "search", Config{
		Enabled:  true,
		Registry: testRegistry,
	})

	for i := 0; i < 5; i++ {
		rec.Call()
	}
	rec.Suppressed()
	rec.Suppressed()
	rec.Invoked(EdgeTrailing, 3*time.Millisecond, nil)

	registry := NewRegistry(testRegistry)
	fmt.Printf("calls: %.0f\n", testutil.ToFloat64(registry.Calls.WithLabelValues("debounce", "search")))
	fmt.Printf("trailing runs: %.0f\n", testutil.ToFloat64(registry.Invocations.WithLabelValues("debounce", "search", EdgeTrailing)))
	fmt.Printf("suppressed: %.0f\n", testutil.ToFloat64(registry.Suppressed.WithLabelValues("debounce", "search")))

	// Output:
	// calls: 5
	// trailing runs: 1
	// suppressed: 2
}

// Example_customNamespace demonstrates overriding the metric namespace.
func Example_customNamespace() {
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:   true,
		Registry:  customRegistry,
		Namespace: "myapp",
	}

	rec := NewRecorder("memoize", "profiles", config)
	rec.CacheMiss()
	rec.CacheHit()
	rec.CacheHit()
	rec.CacheSize(1)

	count, _ := testutil.GatherAndCount(customRegistry, "myapp_cache_hits_total")
	fmt.Printf("Custom registry enabled: %v\n", config.Enabled)
	fmt.Printf("hit series: %d\n", count)

	// Output:
	// Custom registry enabled: true
	// hit series: 1
}
