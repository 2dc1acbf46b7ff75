package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusMatched = "matched"
	statusDefault = "default"
	statusNoMatch = "no_match"
)

// Metrics holds the router's Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	navigations  *prometheus.CounterVec
	routeChanges *prometheus.CounterVec
	duration     prometheus.Histogram
	suppressed   prometheus.Counter
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer
	buckets   []float64
}

// WithNamespace sets the metric namespace. Default: "hashroute".
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) { c.namespace = ns }
}

// WithSubsystem sets the metric subsystem. Default: "router".
func WithSubsystem(s string) MetricsOption {
	return func(c *metricsConfig) { c.subsystem = s }
}

// WithRegistry registers the collectors on reg instead of the default
// registerer.
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *metricsConfig) { c.registry = reg }
}

// WithBuckets sets the route change duration buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *metricsConfig) { c.buckets = buckets }
}

// NewMetrics creates and registers the router collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &metricsConfig{
		namespace: "hashroute",
		subsystem: "router",
		registry:  prometheus.DefaultRegisterer,
		buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	factory := promauto.With(cfg.registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: cfg.subsystem,
			Name:      "navigations_total",
			Help:      "History updates issued by navigate, by mode.",
		}, []string{"mode"}),
		routeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: cfg.subsystem,
			Name:      "route_changes_total",
			Help:      "Route changes handled, by match status.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Subsystem: cfg.subsystem,
			Name:      "route_change_duration_seconds",
			Help:      "Time spent matching and applying a route change.",
			Buckets:   cfg.buckets,
		}),
		suppressed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Subsystem: cfg.subsystem,
			Name:      "suppressed_total",
			Help:      "Navigation events ignored because the URI did not change.",
		}),
	}
}

func (m *Metrics) recordNavigation(mode NavigationMode) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) recordRouteChange(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.routeChanges.WithLabelValues(status).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) recordSuppressed() {
	if m == nil {
		return
	}
	m.suppressed.Inc()
}
