package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset metrics
	datasetRows         *prometheus.GaugeVec
	datasetLoadDuration *prometheus.HistogramVec
	rowsWithoutDate     *prometheus.CounterVec

	// Selection metrics
	selections         *prometheus.CounterVec
	selectionBuckets   *prometheus.CounterVec
	selectionEmpty     *prometheus.CounterVec
	selectionCache     *prometheus.CounterVec
	selectionLatency   prometheus.Histogram
	valuesExcluded     *prometheus.CounterVec
	playerSearches     prometheus.Counter
	playerSearchMisses prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	rateLimited         *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mlbview",
		subsystem:        "stats",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_rows",
		Help:        "Rows kept per loaded dataset",
		ConstLabels: m.constLabels,
	}, []string{"dataset"})

	m.datasetLoadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time to read a dataset file in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"dataset"})

	m.rowsWithoutDate = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_without_date_total",
		Help:        "Rows whose date could not be parsed",
		ConstLabels: m.constLabels,
	}, []string{"dataset"})

	m.selections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selections_total",
		Help:        "Selections computed by dataset and polarity",
		ConstLabels: m.constLabels,
	}, []string{"dataset", "polarity"})

	m.selectionBuckets = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_bucket_values_total",
		Help:        "Values classified per bucket",
		ConstLabels: m.constLabels,
	}, []string{"bucket"})

	m.selectionEmpty = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_empty_total",
		Help:        "Selections that matched no values",
		ConstLabels: m.constLabels,
	}, []string{"dataset"})

	m.selectionCache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_cache_total",
		Help:        "Selection cache lookups by result",
		ConstLabels: m.constLabels,
	}, []string{"result"})

	m.selectionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_latency_milliseconds",
		Help:        "Time to compute an uncached selection in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.valuesExcluded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "values_excluded_total",
		Help:        "Observations left out of a selection by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.playerSearches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "player_searches_total",
		Help:        "Fuzzy player searches",
		ConstLabels: m.constLabels,
	})

	m.playerSearchMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "player_search_misses_total",
		Help:        "Fuzzy player searches without a match",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "HTTP requests by endpoint, method and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "HTTP error responses by endpoint and type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.rateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rate_limited_total",
		Help:        "Requests rejected by the rate limiter",
		ConstLabels: m.constLabels,
	}, []string{"endpoint"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordDatasetLoad records how long reading a dataset took.
func (m *Manager) RecordDatasetLoad(dataset string, rows int, durationMs float64) {
	m.datasetLoadDuration.WithLabelValues(dataset).Observe(durationMs)
	m.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// UpdateDatasetRows sets the number of rows kept for a dataset.
func (m *Manager) UpdateDatasetRows(dataset string, rows int) {
	m.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordRowsWithoutDate counts rows whose date is NoDate.
func (m *Manager) RecordRowsWithoutDate(dataset string, n int) {
	if n > 0 {
		m.rowsWithoutDate.WithLabelValues(dataset).Add(float64(n))
	}
}

// RecordSelection counts a computed selection and its bucket sizes.
func (m *Manager) RecordSelection(dataset string, reversed bool, above, below, at int, latencyMs float64) {
	polarity := "normal"
	if reversed {
		polarity = "reversed"
	}
	m.selections.WithLabelValues(dataset, polarity).Inc()
	m.selectionBuckets.WithLabelValues("above").Add(float64(above))
	m.selectionBuckets.WithLabelValues("below").Add(float64(below))
	m.selectionBuckets.WithLabelValues("at").Add(float64(at))
	m.selectionLatency.Observe(latencyMs)
}

// RecordSelectionEmpty counts a selection without values.
func (m *Manager) RecordSelectionEmpty(dataset string) {
	m.selectionEmpty.WithLabelValues(dataset).Inc()
}

// RecordCacheLookup counts a selection cache hit or miss.
func (m *Manager) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.selectionCache.WithLabelValues(result).Inc()
}

// RecordValuesExcluded counts observations dropped from a selection.
func (m *Manager) RecordValuesExcluded(reason string, n int) {
	if n > 0 {
		m.valuesExcluded.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordPlayerSearch counts a fuzzy search and whether it found anything.
func (m *Manager) RecordPlayerSearch(matched bool) {
	m.playerSearches.Inc()
	if !matched {
		m.playerSearchMisses.Inc()
	}
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *Manager) RecordRateLimited(endpoint string) {
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// Package-level helpers forward to the global manager.

func RecordDatasetLoad(dataset string, rows int, durationMs float64) {
	globalManager.RecordDatasetLoad(dataset, rows, durationMs)
}

func UpdateDatasetRows(dataset string, rows int) { globalManager.UpdateDatasetRows(dataset, rows) }

func RecordRowsWithoutDate(dataset string, n int) { globalManager.RecordRowsWithoutDate(dataset, n) }

func RecordSelection(dataset string, reversed bool, above, below, at int, latencyMs float64) {
	globalManager.RecordSelection(dataset, reversed, above, below, at, latencyMs)
}

func RecordSelectionEmpty(dataset string) { globalManager.RecordSelectionEmpty(dataset) }

func RecordCacheLookup(hit bool) { globalManager.RecordCacheLookup(hit) }

func RecordValuesExcluded(reason string, n int) { globalManager.RecordValuesExcluded(reason, n) }

func RecordPlayerSearch(matched bool) { globalManager.RecordPlayerSearch(matched) }

func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

func RecordRateLimited(endpoint string) { globalManager.RecordRateLimited(endpoint) }

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// GetRegistry returns the registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
