// Package metrics provides Prometheus metrics for the Wikipedia translation MCP server.
// It tracks tool calls, Wikipedia API calls, and search filtering.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace for all metrics
const (
	Namespace = "wikitranslate_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// WikiAPILatency measures Wikipedia API call latency by language and action
	WikiAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_api_latency_seconds",
		Help:      "Wikipedia API call latency by language and action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"language", "action"})

	// WikiAPIRequestsTotal counts Wikipedia API requests
	WikiAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_requests_total",
		Help:      "Total Wikipedia API requests by language, action and status",
	}, []string{"language", "action", "status"})

	// WikiAPIErrors counts Wikipedia API errors by error kind
	WikiAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_errors_total",
		Help:      "Wikipedia API errors by language, action and error kind",
	}, []string{"language", "action", "error_kind"})

	// DisambiguationFiltered counts search results dropped as disambiguation pages
	DisambiguationFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "disambiguation_filtered_total",
		Help:      "Search results removed because they are disambiguation pages",
	}, []string{"language"})

	// TranslationLookups counts language link lookups by outcome
	TranslationLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "translation_lookups_total",
		Help:      "Language link lookups by source, target and outcome (found, missing)",
	}, []string{"source", "target", "outcome"})

	// ConcurrencyWaits counts requests that had to wait for a transport slot
	ConcurrencyWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "concurrency_waits_total",
		Help:      "Requests that waited for the transport semaphore",
	})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by operation and status",
	}, []string{"op", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"op"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Wikipedia API call
func RecordAPICall(language, action string, duration float64, success bool, errorKind string) {
	status := "success"
	if !success {
		status = "error"
	}
	WikiAPIRequestsTotal.WithLabelValues(language, action, status).Inc()
	WikiAPILatency.WithLabelValues(language, action).Observe(duration)
	if errorKind != "" {
		WikiAPIErrors.WithLabelValues(language, action, errorKind).Inc()
	}
}

// RecordHTTPRequest records one transport round trip
func RecordHTTPRequest(op, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(op, status).Inc()
	HTTPRequestDuration.WithLabelValues(op).Observe(duration)
}

// RecordTranslationLookup records whether a language link was found
func RecordTranslationLookup(source, target string, found bool) {
	outcome := "found"
	if !found {
		outcome = "missing"
	}
	TranslationLookups.WithLabelValues(source, target, outcome).Inc()
}

// Handler returns the HTTP handler serving the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
