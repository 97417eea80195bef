package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ToggleCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_toggle_count",
			Help: "Total number of item toggles",
		},
		[]string{"kind", "direction"}, // kind: task, meal; direction: complete, undo
	)

	ExpAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exp_awarded_total",
			Help: "Total experience points awarded",
		},
	)

	DayCompletedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "day_completed_count",
			Help: "Total number of day completions",
		},
	)

	SyncFailureCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_sync_failure_count",
			Help: "Remote writes that failed after the local state was already applied",
		},
		[]string{"op"},
	)

	DBQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Queries slower than the configured threshold",
		},
	)

	StoreLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "store_load_duration_seconds",
			Help:    "Progress store initial load duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

// RecordHTTPRequestDuration records one served request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementToggle counts a toggle by item kind and direction.
func IncrementToggle(kind, direction string) {
	ToggleCount.WithLabelValues(kind, direction).Inc()
}

// AddExpAwarded accumulates awarded exp. Undo toggles do not subtract.
func AddExpAwarded(exp int) {
	ExpAwarded.Add(float64(exp))
}

// IncrementDayCompleted counts a day completion.
func IncrementDayCompleted() {
	DayCompletedCount.Inc()
}

// IncrementSyncFailure counts a failed best-effort remote write.
func IncrementSyncFailure(op string) {
	SyncFailureCount.WithLabelValues(op).Inc()
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(duration time.Duration) {
	DBQueryDuration.Observe(duration.Seconds())
}

// IncrementSlowQuery counts a query over the slow threshold.
func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}

// RecordStoreLoad records one initial snapshot load.
func RecordStoreLoad(duration time.Duration) {
	StoreLoadDuration.Observe(duration.Seconds())
}
