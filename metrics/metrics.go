// Package metrics provides Prometheus metrics for the meditrack API:
// the usual HTTP request counters and histograms, plus domain gauges
// for the tracked collections, refreshed by the store on every change.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	MedicationsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meditrack_medications_active",
			Help: "Number of active medications",
		},
	)

	MedicationsArchived = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meditrack_medications_archived",
			Help: "Number of archived medications",
		},
	)

	SideEffectLogsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meditrack_side_effect_logs",
			Help: "Number of stored side-effect logs",
		},
	)

	MoodLogsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meditrack_mood_logs",
			Help: "Number of stored mood logs",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(MedicationsActive)
	prometheus.MustRegister(MedicationsArchived)
	prometheus.MustRegister(SideEffectLogsTotal)
	prometheus.MustRegister(MoodLogsTotal)
}
