package loom

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Optional Prometheus instrumentation. Disabled (nil collectors, no
// overhead beyond an atomic load) until EnableMetrics is called.

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// Buckets are the histogram buckets for pass duration in seconds.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures EnableMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

// Metrics holds the registered collectors.
type Metrics struct {
	mounts        prometheus.Counter
	editorApplies prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	passDuration  prometheus.Histogram
}

var (
	metricsMu sync.Mutex
	metrics   *Metrics
)

// EnableMetrics registers the collectors and turns instrumentation on.
// Calling it twice returns the first registration.
func EnableMetrics(opts ...MetricsOption) *Metrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metrics != nil {
		return metrics
	}
	cfg := MetricsConfig{
		Namespace: "loom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)
	metrics = &Metrics{
		mounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "mounts_total",
			Help:      "Mount/Render passes performed.",
		}),
		editorApplies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "editor_applies_total",
			Help:      "Editor invocations across all updates.",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "compile_cache_hits_total",
			Help:      "Template compilations served from the identity cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "compile_cache_misses_total",
			Help:      "Template compilations that required parsing.",
		}),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "pass_duration_seconds",
			Help:      "Duration of full reconciliation passes.",
			Buckets:   cfg.Buckets,
		}),
	}
	return metrics
}

func activeMetrics() *Metrics {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	return metrics
}

func observeMount(d time.Duration) {
	if m := activeMetrics(); m != nil {
		m.mounts.Inc()
		m.passDuration.Observe(d.Seconds())
	}
}

func recordEditorApply() {
	if m := activeMetrics(); m != nil {
		m.editorApplies.Inc()
	}
}

func recordCacheHit() {
	if m := activeMetrics(); m != nil {
		m.cacheHits.Inc()
	}
}

func recordCacheMiss() {
	if m := activeMetrics(); m != nil {
		m.cacheMisses.Inc()
	}
}
