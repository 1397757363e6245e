package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Search cache metrics
	SearchCacheHitsTotal   *prometheus.CounterVec
	SearchCacheMissesTotal *prometheus.CounterVec

	// Report job metrics
	ReportJobsTotal    *prometheus.CounterVec
	ReportJobsQueued   prometheus.Gauge
	ReportJobDuration  prometheus.Histogram

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quill_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SearchCacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_search_cache_hits_total",
				Help: "Search cache hits",
			},
			[]string{"backend"},
		),
		SearchCacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_search_cache_misses_total",
				Help: "Search cache misses",
			},
			[]string{"backend"},
		),
		ReportJobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_report_jobs_total",
				Help: "Post report jobs by outcome",
			},
			[]string{"status"},
		),
		ReportJobsQueued: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quill_report_jobs_queued",
				Help: "Post report jobs currently queued",
			},
		),
		ReportJobDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quill_report_job_duration_seconds",
				Help:    "Post report job duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quill_db_connections_active",
				Help: "Active database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quill_db_connections_idle",
				Help: "Idle database connections",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchCacheHitsTotal,
		m.SearchCacheMissesTotal,
		m.ReportJobsTotal,
		m.ReportJobsQueued,
		m.ReportJobDuration,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
	)

	return m
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
