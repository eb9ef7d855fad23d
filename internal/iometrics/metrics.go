// Package iometrics holds Prometheus collectors for ingestion runs and
// the HTTP API.
package iometrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gnweather"

// Metrics holds the Prometheus counters and histograms of the service.
type Metrics struct {
	// Ingestion metrics.
	IngestRuns     *prometheus.CounterVec // labels: result={ok,error,cancelled}
	IngestRecords  prometheus.Counter
	IngestDuration prometheus.Histogram

	// HTTP metrics.
	HTTPRequests *prometheus.CounterVec   // labels: route, code
	HTTPDuration *prometheus.HistogramVec // labels: route
}

// New creates all collectors and registers them with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IngestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Ingestion runs by result.",
		}, []string{"result"}),
		IngestRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_records_total",
			Help:      "Observation lines committed by ingestion runs.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete ingestion run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.IngestRuns,
		m.IngestRecords,
		m.IngestDuration,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}
