package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics records outcomes of record-store and migration operations.
type StorageMetrics struct {
	reads          *prometheus.CounterVec
	writes         *prometheus.CounterVec
	writeFailures  *prometheus.CounterVec
	repairedTotal  *prometheus.CounterVec
	migrationRuns  *prometheus.CounterVec
	migrationSteps prometheus.Histogram
}

// NewStorageMetrics registers the storage metrics on the provided registerer.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	reads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_reads_total",
		Help: "Collection reads, by collection.",
	}, []string{"collection"})
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_writes_total",
		Help: "Collection writes, by collection.",
	}, []string{"collection"})
	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_write_failures_total",
		Help: "Best-effort collection writes that hit a store error.",
	}, []string{"collection"})
	repaired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_repaired_records_total",
		Help: "Records dropped by the validation sweep.",
	}, []string{"collection"})
	migrationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_migration_runs_total",
		Help: "Migration engine runs, by outcome.",
	}, []string{"outcome"})
	migrationSteps := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storage_migration_steps",
		Help:    "Number of steps executed per migration run.",
		Buckets: []float64{0, 1, 2, 3, 5, 8},
	})
	reg.MustRegister(reads, writes, writeFailures, repaired, migrationRuns, migrationSteps)
	return &StorageMetrics{
		reads:          reads,
		writes:         writes,
		writeFailures:  writeFailures,
		repairedTotal:  repaired,
		migrationRuns:  migrationRuns,
		migrationSteps: migrationSteps,
	}
}

// IncRead counts a collection read.
func (m *StorageMetrics) IncRead(collection string) {
	if m == nil || m.reads == nil {
		return
	}
	m.reads.WithLabelValues(normalizeLabel(collection)).Inc()
}

// IncWrite counts a collection write.
func (m *StorageMetrics) IncWrite(collection string) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(collection)).Inc()
}

// IncWriteFailure counts a swallowed best-effort write failure.
func (m *StorageMetrics) IncWriteFailure(collection string) {
	if m == nil || m.writeFailures == nil {
		return
	}
	m.writeFailures.WithLabelValues(normalizeLabel(collection)).Inc()
}

// AddRepaired counts records dropped by the validation sweep.
func (m *StorageMetrics) AddRepaired(collection string, count int) {
	if m == nil || m.repairedTotal == nil || count <= 0 {
		return
	}
	m.repairedTotal.WithLabelValues(normalizeLabel(collection)).Add(float64(count))
}

// ObserveMigration records one migration run.
func (m *StorageMetrics) ObserveMigration(success bool, steps int) {
	if m == nil || m.migrationRuns == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.migrationRuns.WithLabelValues(outcome).Inc()
	m.migrationSteps.Observe(float64(steps))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
