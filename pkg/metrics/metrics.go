// Package metrics provides Prometheus instrumentation for goinvoke wrappers.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace is set.
const DefaultNamespace = "goinvoke"

// Registry holds all metric instances for goinvoke components.
type Registry struct {
	// Invocation Metrics
	Calls              *prometheus.CounterVec
	Invocations        *prometheus.CounterVec
	Suppressed         *prometheus.CounterVec
	Canceled           *prometheus.CounterVec
	Errors             *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	Pending            *prometheus.GaugeVec

	// Cache Metrics
	CacheHits    *prometheus.CounterVec
	CacheMisses  *prometheus.CounterVec
	CacheEntries *prometheus.GaugeVec
	CacheResets  *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by goinvoke components.
var DefaultRegistry *Registry

var (
	registriesMu sync.Mutex
	registries   = map[registryKey]*Registry{}
)

type registryKey struct {
	reg       prometheus.Registerer
	namespace string
}

func init() {
	DefaultRegistry = For(prometheus.DefaultRegisterer, DefaultNamespace)
}

// For returns the Registry registered on reg under namespace, creating it on
// first use. Components sharing a Registerer share one Registry, so
// registering the collectors twice never panics.
func For(reg prometheus.Registerer, namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	key := registryKey{reg: reg, namespace: namespace}

	registriesMu.Lock()
	defer registriesMu.Unlock()

	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(reg, namespace)
	registries[key] = r
	return r
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return For(reg, DefaultNamespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)
	wrapperLabels := []string{"wrapper_type", "wrapper_name"}

	return &Registry{
		// Invocation Metrics
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "calls_total",
				Help:      "Total number of calls made to wrapped functions",
			},
			wrapperLabels,
		),

		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "invocations_total",
				Help:      "Total number of times the underlying function actually ran",
			},
			[]string{"wrapper_type", "wrapper_name", "edge"},
		),

		Suppressed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "suppressed_total",
				Help:      "Total number of calls absorbed without running the function",
			},
			wrapperLabels,
		),

		Canceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "canceled_total",
				Help:      "Total number of pending invocations discarded by Cancel",
			},
			wrapperLabels,
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "errors_total",
				Help:      "Total number of invocations that returned an error or panicked",
			},
			[]string{"wrapper_type", "wrapper_name", "edge"},
		),

		InvocationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "duration_seconds",
				Help:      "Time spent running the underlying function",
				Buckets:   prometheus.DefBuckets,
			},
			wrapperLabels,
		),

		Pending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "invoke",
				Name:      "pending",
				Help:      "1 while a deferred invocation is scheduled, 0 otherwise",
			},
			wrapperLabels,
		),

		// Cache Metrics
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of calls answered from the cache",
			},
			wrapperLabels,
		),

		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of calls that had to run the function",
			},
			wrapperLabels,
		),

		CacheEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "entries",
				Help:      "Number of entries currently cached",
			},
			wrapperLabels,
		),

		CacheResets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "resets_total",
				Help:      "Total number of whole-cache clears",
			},
			wrapperLabels,
		),
	}
}
