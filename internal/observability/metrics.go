package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	portalRequestsTotal  *prometheus.CounterVec
	portalLatencySeconds *prometheus.HistogramVec
	portalErrorsTotal    *prometheus.CounterVec
	backendCallSeconds   *prometheus.HistogramVec
	gateDecisionsTotal   *prometheus.CounterVec
	sessionChangesTotal  *prometheus.CounterVec
	marksImportRowsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the portal.
func RegisterMetrics() {
	registerOnce.Do(func() {
		portalRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of portal requests served.",
		}, []string{"method", "route", "status"})

		portalLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_latency_seconds",
			Help:    "Latency distribution for portal requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		portalErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_errors_total",
			Help: "Total number of error responses returned by the portal.",
		}, []string{"method", "route", "status"})

		backendCallSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_backend_call_seconds",
			Help:    "Latency of calls to the REST backend by operation and outcome.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation", "outcome"})

		gateDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_gate_decisions_total",
			Help: "Route gate decisions by outcome.",
		}, []string{"outcome"})

		sessionChangesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_session_changes_total",
			Help: "Session transitions by kind.",
		}, []string{"kind"})

		marksImportRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_marks_import_rows_total",
			Help: "Rows read from uploaded marks sheets by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			portalRequestsTotal,
			portalLatencySeconds,
			portalErrorsTotal,
			backendCallSeconds,
			gateDecisionsTotal,
			sessionChangesTotal,
			marksImportRowsTotal,
		)
	})
}

// PortalRequests exposes the counter for portal requests.
func PortalRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return portalRequestsTotal
}

// PortalLatency exposes the latency histogram for portal requests.
func PortalLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return portalLatencySeconds
}

// PortalErrors exposes the counter for error responses.
func PortalErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return portalErrorsTotal
}

// BackendCalls exposes the backend call histogram.
func BackendCalls() *prometheus.HistogramVec {
	RegisterMetrics()
	return backendCallSeconds
}

// GateDecisions exposes the gate decision counter.
func GateDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return gateDecisionsTotal
}

// SessionChanges exposes the session transition counter.
func SessionChanges() *prometheus.CounterVec {
	RegisterMetrics()
	return sessionChangesTotal
}

// MarksImportRows exposes the bulk import row counter.
func MarksImportRows() *prometheus.CounterVec {
	RegisterMetrics()
	return marksImportRowsTotal
}
