// Package metrics provides Prometheus metrics for the live scoreboard.
package metrics

import (
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// In-memory operations finish well below a millisecond, so the default
// buckets start at ten microseconds.
var defaultBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100} //nolint:gochecknoglobals // bucket layout constant

// Manager manages all Prometheus metrics for the scoreboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Entity store metrics
	storeOperations        *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	storeEntities          *prometheus.GaugeVec

	// Lifecycle and summary metrics
	lifecycleOperations *prometheus.CounterVec
	summaryDuration     *prometheus.HistogramVec
	activeMatches       *prometheus.GaugeVec
}

var (
	mu            sync.RWMutex
	globalManager *Manager            //nolint:gochecknoglobals // process-wide metrics manager
	registry      *prometheus.Registry //nolint:gochecknoglobals // custom registry, no default Go collectors
)

func init() { //nolint:gochecknoinits // default metrics are usable before Init
	registry = prometheus.NewRegistry()
	globalManager = NewManager(WithPrometheusRegistry(registry))
}

// Init replaces the global manager with one built from opts on a fresh registry.
// Call it once at startup, before any metric is recorded.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(reg))...)

	mu.Lock()
	registry = reg
	globalManager = m
	mu.Unlock()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "livescore",
		subsystem:        "scoreboard",
		histogramBuckets: defaultBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.storeOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_operations_total",
		Help:      "Entity store operations by store, operation and result",
	}, []string{"store", "op", "result"})

	m.storeOperationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_operation_duration_milliseconds",
		Help:      "Entity store operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"store", "op"})

	m.storeEntities = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_entities",
		Help:      "Number of entities currently held per store",
	}, []string{"store"})

	m.lifecycleOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lifecycle_operations_total",
		Help:      "Match lifecycle operations by variant, operation and result",
	}, []string{"variant", "op", "result"})

	m.summaryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summary_duration_milliseconds",
		Help:      "Time spent deriving the active match summary",
		Buckets:   m.histogramBuckets,
	}, []string{"variant"})

	m.activeMatches = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_matches",
		Help:      "Active matches in the most recent summary",
	}, []string{"variant"})
}

func current() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	return globalManager
}

// RecordStoreOperation counts one store operation and observes its latency.
func RecordStoreOperation(store, op, result string, latencyMs float64) {
	m := current()
	m.storeOperations.WithLabelValues(store, op, result).Inc()
	m.storeOperationDuration.WithLabelValues(store, op).Observe(latencyMs)
}

// UpdateStoreEntities sets the entity count of a store.
func UpdateStoreEntities(store string, count int) {
	current().storeEntities.WithLabelValues(store).Set(float64(count))
}

// RecordLifecycleOperation counts a match lifecycle operation.
func RecordLifecycleOperation(variant, op, result string) {
	current().lifecycleOperations.WithLabelValues(variant, op, result).Inc()
}

// RecordSummary observes summary latency and publishes the active match count.
func RecordSummary(variant string, latencyMs float64, active int) {
	m := current()
	m.summaryDuration.WithLabelValues(variant).Observe(latencyMs)
	m.activeMatches.WithLabelValues(variant).Set(float64(active))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// WriteText writes every registered metric to w in the Prometheus text format.
func WriteText(w io.Writer) error {
	families, err := GetRegistry().Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %w", ErrGatherFailed, err)
		}
	}
	return nil
}
