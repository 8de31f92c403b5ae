package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CacheLookups counts avatar cache lookups, labelled by result (hit or miss).
var CacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "avatar",
		Subsystem: "cache",
		Name:      "lookups_total",

		Help: "Avatar cache lookups, labelled by result",
	},
	[]string{"result"},
)

// CacheErrors counts failed calls to a remote cache backend, labelled by
// operation (get, set or exists).
var CacheErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "avatar",
		Subsystem: "cache",
		Name:      "errors_total",

		Help: "Failed cache backend calls, labelled by operation",
	},
	[]string{"op"},
)

// Renders counts avatar renders, labelled by outcome (ok or error).
var Renders = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "avatar",
		Name:      "renders_total",

		Help: "Avatar renders, labelled by outcome",
	},
	[]string{"outcome"},
)

// RenderDuration observes the time spent drawing and encoding one avatar.
var RenderDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "avatar",
		Name:      "render_duration_seconds",

		Help: "Time spent drawing and encoding an avatar",

		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	},
)

// HTTPRequestDurations is a summary of the durations of http requests,
// labelled by method and status code
var HTTPRequestDurations = prometheus.NewSummaryVec(
	prometheus.SummaryOpts{
		Namespace: "http",
		Name:      "request_duration_seconds",

		Help: "Durations of http requests, labelled by method and status code",

		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	},
	[]string{"method", "code"},
)

func init() {
	prometheus.MustRegister(CacheLookups, CacheErrors, Renders, RenderDuration, HTTPRequestDurations)
}

// Handler serves the registered collectors in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
