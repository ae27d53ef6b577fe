// Package metrics provides Prometheus instrumentation for goinvoke wrappers.
//
// Every wrapper (debounce, throttle, once, memoize) accepts a metrics.Config
// and records what happened to each call: whether it ran the wrapped
// function, on which edge, how long it took, whether it failed, and whether
// it was absorbed by the wrapper's timing or caching policy.
//
// # Quick Start
//
// Enable metrics through the wrapper configuration:
//
//	cfg := debounce.DefaultConfig()
//	cfg.Wait = 300 * time.Millisecond
//	cfg.Name = "search"
//	cfg.Metrics = metrics.Config{Enabled: true}
//	d, err := debounce.NewWithConfig(runSearch, cfg)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	cfg.Metrics = metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
// Wrappers sharing a Registerer and namespace share one Registry; the
// collectors are registered once.
//
// # Available Metrics
//
//   - goinvoke_invoke_calls_total: Calls made to a wrapper
//   - goinvoke_invoke_invocations_total: Runs of the wrapped function, by edge
//   - goinvoke_invoke_suppressed_total: Calls absorbed without a run
//   - goinvoke_invoke_canceled_total: Pending invocations discarded by Cancel
//   - goinvoke_invoke_errors_total: Runs that returned an error or panicked, by edge
//   - goinvoke_invoke_duration_seconds: Time spent in the wrapped function
//   - goinvoke_invoke_pending: 1 while a deferred invocation is scheduled
//   - goinvoke_cache_hits_total: Memoized calls answered from the cache
//   - goinvoke_cache_misses_total: Memoized calls that ran the function
//   - goinvoke_cache_entries: Current number of cached entries
//   - goinvoke_cache_resets_total: Whole-cache clears
//
// # Labels
//
//   - wrapper_type: "debounce", "throttle", "once" or "memoize"
//   - wrapper_name: User-provided name for the wrapper instance
//   - edge: "leading", "trailing", "flush" or "direct"
//
// # Runtime Control
//
// Recorder implements Instrumentable, so collection can be switched at runtime:
//
//	rec := metrics.NewRecorder("throttle", "scroll", metrics.DefaultConfig())
//	rec.DisableMetrics()
//	rec.EnableMetrics(cfg)
package metrics
