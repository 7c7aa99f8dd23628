package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPResponseSize      *prometheus.HistogramVec
	HTTPActiveConnections *prometheus.GaugeVec

	// Rate limiting metrics
	RateLimitExceededTotal *prometheus.CounterVec

	// Database metrics
	DatabaseQueryDuration *prometheus.HistogramVec
	DatabaseQueriesTotal  *prometheus.CounterVec

	// Redis metrics
	RedisOperationDuration *prometheus.HistogramVec
	RedisOperationsTotal   *prometheus.CounterVec

	// Search metrics
	SearchQueriesTotal *prometheus.CounterVec

	// Dashboard/list metrics
	DashboardGenerationTime prometheus.Histogram
	DisclosureWindowSize    *prometheus.HistogramVec
	DisclosureRevealsTotal  *prometheus.CounterVec

	// Error metrics
	ErrorsTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_response_size_bytes",
					Help:    "HTTP response size in bytes",
					Buckets: prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "http_active_connections",
					Help: "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			RateLimitExceededTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"endpoint", "method"},
			),

			DatabaseQueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "database_query_duration_seconds",
					Help:    "Database query latency in seconds",
					Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"query_type", "table"},
			),
			DatabaseQueriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "database_queries_total",
					Help: "Total number of database queries",
				},
				[]string{"query_type", "table", "status"},
			),

			RedisOperationDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "redis_operation_duration_seconds",
					Help:    "Redis operation latency in seconds",
					Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
				},
				[]string{"operation"},
			),
			RedisOperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "redis_operations_total",
					Help: "Total number of Redis operations",
				},
				[]string{"operation", "status"},
			),

			SearchQueriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "search_queries_total",
					Help: "Total number of search queries by index and backend",
				},
				[]string{"index", "backend", "status"},
			),

			DashboardGenerationTime: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "dashboard_generation_duration_seconds",
					Help:    "Time to build a user's dashboard in seconds",
					Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
				},
			),
			DisclosureWindowSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "disclosure_window_items",
					Help:    "Number of items shown per list response",
					Buckets: []float64{0, 1, 3, 6, 9, 12, 24, 48, 96},
				},
				[]string{"list"},
			),
			DisclosureRevealsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "disclosure_reveals_total",
					Help: "Total number of show-more presses replayed by list requests",
				},
				[]string{"list"},
			),

			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by type",
				},
				[]string{"error_type", "endpoint"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}
