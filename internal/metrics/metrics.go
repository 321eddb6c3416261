package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
// Using promauto automatically registers metrics with the default registry

var (
	// ==================== HTTP METRICS ====================

	// HTTPRequestDuration tracks the duration of HTTP requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsTotal counts total HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsInFlight tracks currently processing requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// PanicsRecoveredTotal counts handler panics turned into 500s
	PanicsRecoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Total number of handler panics recovered by middleware",
		},
	)

	// ==================== BUSINESS METRICS ====================

	// EntriesCreatedTotal counts new short links
	EntriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entries_created_total",
			Help: "Total number of short links created",
		},
	)

	// DuplicateSubmissionsTotal counts addURL calls answered with an existing entry
	DuplicateSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_submissions_total",
			Help: "Total number of submissions resolved to an existing entry",
		},
	)

	// ValidationFailuresTotal counts rejected submissions by reason
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of rejected URL submissions",
		},
		[]string{"reason"}, // empty, invalid
	)

	// IDGenerationFailuresTotal counts empty IDs and ID collisions
	IDGenerationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "id_generation_failures_total",
			Help: "Total number of failed short ID generations",
		},
	)

	// RedirectsTotal counts successful redirects
	RedirectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirects_total",
			Help: "Total number of successful redirects",
		},
	)

	// RedirectMissesTotal counts lookups of unknown short IDs
	RedirectMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_misses_total",
			Help: "Total number of redirects for unknown short IDs",
		},
	)

	// StoredEntriesGauge tracks the size of the store
	StoredEntriesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_entries",
			Help: "Number of entries currently held in the store",
		},
	)
)

// RecordEntryCreated increments the creation counter and updates the store size
func RecordEntryCreated(stored int) {
	EntriesCreatedTotal.Inc()
	StoredEntriesGauge.Set(float64(stored))
}

// RecordDuplicate increments duplicate submission counter
func RecordDuplicate() {
	DuplicateSubmissionsTotal.Inc()
}

// RecordValidationFailure increments the validation failure counter for reason
func RecordValidationFailure(reason string) {
	ValidationFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordIDGenerationFailure increments ID generation failure counter
func RecordIDGenerationFailure() {
	IDGenerationFailuresTotal.Inc()
}

// RecordRedirect increments redirect counter
func RecordRedirect() {
	RedirectsTotal.Inc()
}

// RecordRedirectMiss increments redirect miss counter
func RecordRedirectMiss() {
	RedirectMissesTotal.Inc()
}

// RecordPanic increments the recovered panic counter
func RecordPanic() {
	PanicsRecoveredTotal.Inc()
}

// SetStoredEntries sets the store size gauge
func SetStoredEntries(n int) {
	StoredEntriesGauge.Set(float64(n))
}

// Handler exposes the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
