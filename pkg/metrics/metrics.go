// Package metrics provides Prometheus metrics for langstats.
//
// A [Manager] owns every collector and implements the observability hook
// interfaces, so registering it once at startup instruments the refresh
// pipeline, the snapshot cache, and upstream HTTP calls:
//
//	m := metrics.NewManager()
//	observability.SetRefreshHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/langstats/pkg/observability"
)

// Manager holds the langstats collectors on its own registry.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Refresh pipeline
	refreshes         *prometheus.CounterVec
	refreshDuration   prometheus.Histogram
	refreshLastUnix   prometheus.Gauge
	inFlightRefreshes prometheus.Gauge
	languages         prometheus.Gauge
	repositories      prometheus.Gauge
	totalBytes        prometheus.Gauge

	// Badge rendering
	renders        prometheus.Counter
	renderDuration prometheus.Histogram
	renderBytes    prometheus.Gauge

	// Snapshot cache
	cacheEvents *prometheus.CounterVec

	// Upstream HTTP
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec

	// Served HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a manager with all collectors registered.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "langstats",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "refreshes_total",
		Help:      "Snapshot refreshes by outcome",
	}, []string{"result"})
	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Time to aggregate, rank, and persist a snapshot",
		Buckets:   m.histogramBuckets,
	})
	m.refreshLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "refresh_last_success_unix",
		Help:      "Unix time of the last successful refresh",
	})
	m.inFlightRefreshes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "refreshes_in_flight",
		Help:      "Refreshes currently running",
	})
	m.languages = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "snapshot_languages",
		Help:      "Entries in the most recent snapshot",
	})
	m.repositories = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "aggregate_repositories",
		Help:      "Repositories seen by the last aggregation",
	})
	m.totalBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "aggregate_bytes",
		Help:      "Total language bytes seen by the last aggregation",
	})

	m.renders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "renders_total",
		Help:      "Badges rendered",
	})
	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "render_duration_seconds",
		Help:      "Badge rendering time",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	})
	m.renderBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "render_size_bytes",
		Help:      "Size of the last rendered badge",
	})

	m.cacheEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_events_total",
		Help:      "Snapshot cache hits, misses, and writes",
	}, []string{"event", "key_type"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_requests_total",
		Help:      "Upstream API responses by host and status",
	}, []string{"host", "status"})
	m.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream API latency",
		Buckets:   m.histogramBuckets,
	}, []string{"host"})
	m.upstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_errors_total",
		Help:      "Upstream requests that failed before a response",
	}, []string{"host"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Served HTTP requests",
	}, []string{"method", "route", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Served HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})
}

// Registry returns the registry holding the collectors.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Register installs m as the process-wide observability backend.
func (m *Manager) Register() {
	observability.SetRefreshHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// =============================================================================
// observability.RefreshHooks
// =============================================================================

func (m *Manager) OnRefreshStart(ctx context.Context) {
	m.inFlightRefreshes.Inc()
}

func (m *Manager) OnRefreshComplete(ctx context.Context, languages int, d time.Duration, err error) {
	m.inFlightRefreshes.Dec()
	m.refreshDuration.Observe(d.Seconds())
	if err != nil {
		m.refreshes.WithLabelValues("error").Inc()
		return
	}
	m.refreshes.WithLabelValues("ok").Inc()
	m.refreshLastUnix.SetToCurrentTime()
	m.languages.Set(float64(languages))
}

func (m *Manager) OnAggregate(ctx context.Context, repos, languages int, totalBytes int64) {
	m.repositories.Set(float64(repos))
	m.totalBytes.Set(float64(totalBytes))
}

func (m *Manager) OnRender(ctx context.Context, languages, size int, d time.Duration) {
	m.renders.Inc()
	m.renderDuration.Observe(d.Seconds())
	m.renderBytes.Set(float64(size))
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

func (m *Manager) OnCacheHit(ctx context.Context, keyType string) {
	m.cacheEvents.WithLabelValues("hit", keyType).Inc()
}

func (m *Manager) OnCacheMiss(ctx context.Context, keyType string) {
	m.cacheEvents.WithLabelValues("miss", keyType).Inc()
}

func (m *Manager) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues("set", keyType).Inc()
}

// =============================================================================
// observability.HTTPHooks
// =============================================================================

func (m *Manager) OnRequest(ctx context.Context, method, host, path string) {}

func (m *Manager) OnResponse(ctx context.Context, method, host, path string, statusCode int, d time.Duration) {
	m.upstreamRequests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	m.upstreamDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Manager) OnError(ctx context.Context, method, host, path string, err error) {
	m.upstreamErrors.WithLabelValues(host).Inc()
}

var (
	_ observability.RefreshHooks = (*Manager)(nil)
	_ observability.CacheHooks   = (*Manager)(nil)
	_ observability.HTTPHooks    = (*Manager)(nil)
)
