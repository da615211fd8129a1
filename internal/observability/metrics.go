// ABOUTME: Prometheus instruments for the storage layer.
// ABOUTME: Registered on the default registry and served by `fitspire mcp --metrics-addr`.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fitspire"

var (
	workoutsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "workouts_saved_total",
		Help:      "Workout aggregates committed by SaveWorkout.",
	})

	workoutsUpdated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "workouts_updated_total",
		Help:      "Workout aggregates committed by UpdateWorkout.",
	})

	workoutsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "workouts_deleted_total",
		Help:      "Workouts removed together with their exercises and sets.",
	})

	historyQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "history_queries_total",
		Help:      "Monthly history fetches served.",
	})

	rowsReconstructed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "rows_reconstructed_total",
		Help:      "Flattened join rows folded into workout trees.",
	})

	operationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "errors_total",
		Help:      "Storage operations that returned an error, by operation.",
	}, []string{"operation"})

	lastWrite = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "last_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent committed write.",
	})
)

func init() {
	prometheus.MustRegister(
		workoutsSaved,
		workoutsUpdated,
		workoutsDeleted,
		historyQueries,
		rowsReconstructed,
		operationErrors,
		lastWrite,
	)
}

// RecordWorkoutSaved counts a committed SaveWorkout.
func RecordWorkoutSaved(ts time.Time) {
	workoutsSaved.Inc()
	recordWrite(ts)
}

// RecordWorkoutUpdated counts a committed UpdateWorkout.
func RecordWorkoutUpdated(ts time.Time) {
	workoutsUpdated.Inc()
	recordWrite(ts)
}

// RecordWorkoutDeleted counts a committed DeleteWorkout.
func RecordWorkoutDeleted(ts time.Time) {
	workoutsDeleted.Inc()
	recordWrite(ts)
}

// RecordHistoryQuery counts a history fetch and the rows it folded.
func RecordHistoryQuery(rows int) {
	historyQueries.Inc()
	RecordRowsReconstructed(rows)
}

// RecordRowsReconstructed adds to the folded-row counter.
func RecordRowsReconstructed(rows int) {
	if rows <= 0 {
		return
	}
	rowsReconstructed.Add(float64(rows))
}

// RecordError counts a failed storage operation.
func RecordError(operation string) {
	operationErrors.WithLabelValues(operation).Inc()
}

func recordWrite(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastWrite.Set(float64(ts.Unix()))
}
