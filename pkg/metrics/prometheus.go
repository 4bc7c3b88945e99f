// Package metrics provides Prometheus metrics for the ironrank service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Computation components, used as the "component" label value.
const (
	ComponentPlates    = "plates"
	ComponentRepMax    = "repmax"
	ComponentVolume    = "volume"
	ComponentRecovery  = "recovery"
	ComponentRank      = "rank"
	ComponentStreak    = "streak"
	ComponentBadges    = "badges"
	ComponentSymmetry  = "symmetry"
	ComponentSummary   = "summary"
	ComponentHistory   = "history"
	ComponentUndo      = "undo"
	ComponentDashboard = "dashboard"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Computation metrics
	computations       *prometheus.CounterVec
	computationLatency *prometheus.HistogramVec
	validationErrors   *prometheus.CounterVec
	setsProcessed      prometheus.Counter
	badgesUnlocked     *prometheus.CounterVec
	lastRankProgress   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	mu            sync.RWMutex
	globalManager *Manager //nolint:gochecknoglobals // package-level helpers record through it

	// customRegistry keeps Go runtime collectors out of /healthz output.
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals
)

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ironrank",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.computations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("computations_total"),
		Help:        "Total number of successful computations per component",
		ConstLabels: labels,
	}, []string{"component"})

	m.computationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("computation_latency_milliseconds"),
		Help:        "Histogram of computation latency in milliseconds per component",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component"})

	m.validationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("validation_errors_total"),
		Help:        "Total number of rejected inputs per component",
		ConstLabels: labels,
	}, []string{"component"})

	m.setsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("sets_processed_total"),
		Help:        "Total number of logged sets fed into computations",
		ConstLabels: labels,
	})

	m.badgesUnlocked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("badges_unlocked_total"),
		Help:        "Total number of badge unlocks reported, per badge id",
		ConstLabels: labels,
	}, []string{"badge"})

	m.lastRankProgress = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("last_rank_progress_percent"),
		Help:        "Rank progress percentage of the most recent dashboard",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by HTTP endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RefreshInterval is how often gauge updaters should sample.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// SetGlobal replaces the manager used by the package-level helpers and
// returns the previous one.
func SetGlobal(m *Manager) (*Manager, error) {
	if m == nil {
		return nil, ErrNilManager
	}
	mu.Lock()
	defer mu.Unlock()
	prev := globalManager
	globalManager = m
	return prev, nil
}

// Configure builds the global manager from opts on a fresh registry, which
// GetRegistry then returns. The returned func puts the previous manager and
// registry back.
func Configure(opts ...Option) (restore func()) {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(reg))...)

	mu.Lock()
	prevManager, prevRegistry := globalManager, customRegistry
	globalManager, customRegistry = m, reg
	mu.Unlock()

	return func() {
		mu.Lock()
		globalManager, customRegistry = prevManager, prevRegistry
		mu.Unlock()
	}
}

// Global returns the manager used by the package-level helpers.
func Global() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	return globalManager
}

func active() *Manager {
	m := Global()
	if m == nil || !m.enabled {
		return nil
	}
	return m
}

// RecordComputation counts a successful computation of component.
func RecordComputation(component string) {
	if m := active(); m != nil {
		m.computations.WithLabelValues(component).Inc()
	}
}

// RecordComputationLatency records how long component took.
func RecordComputationLatency(component string, d time.Duration) {
	if m := active(); m != nil {
		m.computationLatency.WithLabelValues(component).Observe(float64(d) / float64(time.Millisecond))
	}
}

// RecordValidationError counts a rejected input for component.
func RecordValidationError(component string) {
	if m := active(); m != nil {
		m.validationErrors.WithLabelValues(component).Inc()
	}
}

// RecordSetsProcessed adds n logged sets to the processed counter.
func RecordSetsProcessed(n int) {
	if m := active(); m != nil && n > 0 {
		m.setsProcessed.Add(float64(n))
	}
}

// RecordBadgesUnlocked counts each badge id reported as unlocked.
func RecordBadgesUnlocked(ids []string) {
	m := active()
	if m == nil {
		return
	}
	for _, id := range ids {
		m.badgesUnlocked.WithLabelValues(id).Inc()
	}
}

// UpdateLastRankProgress records the rank progress of the latest dashboard.
func UpdateLastRankProgress(pct int) {
	if m := active(); m != nil {
		m.lastRankProgress.Set(float64(pct))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := active(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m := active(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if m := active(); m != nil {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m := active(); m != nil {
		m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := active(); m != nil {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if m := active(); m != nil {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if m := active(); m != nil {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return customRegistry
}
