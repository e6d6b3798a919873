// Package metrics provides Prometheus metrics for the standings engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Default histogram buckets for latency metrics, in milliseconds.
var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager owns every Prometheus metric the engine exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Scoring pipeline
	tournamentsRecorded  prometheus.Counter
	playersScored        prometheus.Counter
	scoreboardUpdates    prometheus.Counter
	qualificationsIssued prometheus.Counter
	finalesRecorded      prometheus.Counter
	duplicateSubmissions prometheus.Counter
	partialWrites        prometheus.Counter

	// Entity store
	storeQueryLatency  prometheus.Histogram
	storeUpdateLatency prometheus.Histogram

	// Standings state
	totalScoreboards prometheus.Gauge
	totalPlayers     prometheus.Gauge
	totalTournaments prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Live feed
	wsClients prometheus.Gauge

	// System
	systemMemoryBytes prometheus.Gauge
	systemGoroutines  prometheus.Gauge
	systemGCPause     prometheus.Histogram
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithMetricsEnabled enables or disables collection.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a Manager and registers every metric on its registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "standings",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		m.registry.MustRegister(c)
		return c
	}
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		m.registry.MustRegister(g)
		return g
	}
	histogram := func(name, help string) prometheus.Histogram {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
			Buckets: m.histogramBuckets,
		})
		m.registry.MustRegister(h)
		return h
	}

	m.tournamentsRecorded = factory("tournaments_recorded_total", "Tournament result submissions applied.")
	m.playersScored = factory("players_scored_total", "Per-player results processed across all submissions.")
	m.scoreboardUpdates = factory("scoreboard_updates_total", "Scoreboard records created or updated.")
	m.qualificationsIssued = factory("qualifications_issued_total", "Finale qualification records emitted.")
	m.finalesRecorded = factory("finales_recorded_total", "Season finale results recorded.")
	m.duplicateSubmissions = factory("duplicate_submissions_total", "Submissions skipped by the idempotency index.")
	m.partialWrites = factory("partial_writes_total", "Submissions that failed after partial persistence.")

	m.storeQueryLatency = histogram("store_query_latency_ms", "Entity store read latency in milliseconds.")
	m.storeUpdateLatency = histogram("store_update_latency_ms", "Entity store write latency in milliseconds.")

	m.totalScoreboards = gauge("scoreboards", "Scoreboard records currently tracked.")
	m.totalPlayers = gauge("players", "Player records currently tracked.")
	m.totalTournaments = gauge("tournaments", "Tournament records currently tracked.")

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.registry.MustRegister(m.httpRequests)

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_ms", Help: "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.registry.MustRegister(m.httpRequestDuration)

	m.wsClients = gauge("ws_clients", "Connected live-standings websocket clients.")

	m.systemMemoryBytes = gauge("system_memory_bytes", "Allocated heap bytes.")
	m.systemGoroutines = gauge("system_goroutines", "Live goroutine count.")
	m.systemGCPause = histogram("system_gc_pause_ms", "Average GC pause time in milliseconds.")
}

// Registry returns the manager's Prometheus registry for exposition.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide metrics manager.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry {
	return Default().Registry()
}

// Package-level helpers recording against the default manager.

func RecordTournamentRecorded() {
	if m := Default(); m.enabled {
		m.tournamentsRecorded.Inc()
	}
}

func RecordPlayerScored() {
	if m := Default(); m.enabled {
		m.playersScored.Inc()
	}
}

func RecordScoreboardUpdate() {
	if m := Default(); m.enabled {
		m.scoreboardUpdates.Inc()
	}
}

func RecordQualificationIssued() {
	if m := Default(); m.enabled {
		m.qualificationsIssued.Inc()
	}
}

func RecordFinaleRecorded() {
	if m := Default(); m.enabled {
		m.finalesRecorded.Inc()
	}
}

func RecordDuplicateSubmission() {
	if m := Default(); m.enabled {
		m.duplicateSubmissions.Inc()
	}
}

func RecordPartialWrite() {
	if m := Default(); m.enabled {
		m.partialWrites.Inc()
	}
}

func RecordStoreQueryLatency(latencyMs float64) {
	if m := Default(); m.enabled {
		m.storeQueryLatency.Observe(latencyMs)
	}
}

func RecordStoreUpdateLatency(latencyMs float64) {
	if m := Default(); m.enabled {
		m.storeUpdateLatency.Observe(latencyMs)
	}
}

func UpdateTotalScoreboards(count int) {
	if m := Default(); m.enabled {
		m.totalScoreboards.Set(float64(count))
	}
}

func UpdateTotalPlayers(count int) {
	if m := Default(); m.enabled {
		m.totalPlayers.Set(float64(count))
	}
}

func UpdateTotalTournaments(count int) {
	if m := Default(); m.enabled {
		m.totalTournaments.Set(float64(count))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if m := Default(); m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if m := Default(); m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

func WSClientConnected() {
	if m := Default(); m.enabled {
		m.wsClients.Inc()
	}
}

func WSClientDisconnected() {
	if m := Default(); m.enabled {
		m.wsClients.Dec()
	}
}

func UpdateSystemMemoryUsage(bytes uint64) {
	if m := Default(); m.enabled {
		m.systemMemoryBytes.Set(float64(bytes))
	}
}

func UpdateSystemGoroutineCount(count int) {
	if m := Default(); m.enabled {
		m.systemGoroutines.Set(float64(count))
	}
}

func RecordSystemGCPauseTime(pauseMs float64) {
	if m := Default(); m.enabled {
		m.systemGCPause.Observe(pauseMs)
	}
}
