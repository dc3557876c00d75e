// Package metrics defines the Prometheus collectors exported on /metrics.
// Collectors register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shifttracker"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - route: chi route pattern (e.g. "/shifts/{user_id}")
//   - method: HTTP method
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by route, method and status.",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration measures handler latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from first byte to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_input", "unknown_id" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests stopped by the access guard.
// Label:
//   - reason: "missing_token", "invalid_token", "insufficient_role" or "not_owner"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// ── Shifts ────────────────────────────────────────────────────────────────────

// ShiftsRecordedTotal counts stored shift records.
// Label:
//   - schema: "itinerary" or "hours"
var ShiftsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shifts_recorded_total",
		Help:      "Total number of shift records stored, by schema.",
	},
	[]string{"schema"},
)

// ── Export ────────────────────────────────────────────────────────────────────

// ExportsTotal counts monthly export requests.
// Label:
//   - result: "success", "empty", "forbidden" or "error"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of monthly exports, by result.",
	},
	[]string{"result"},
)

// ExportRows observes the number of data rows written per spreadsheet.
var ExportRows = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_rows",
		Help:      "Number of shift rows per generated spreadsheet.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	},
)
