package iometrics_test

import (
	"testing"

	"github.com/gnames/gnweather/internal/iometrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := iometrics.New(reg)

	m.IngestRuns.WithLabelValues("ok").Inc()
	m.IngestRecords.Add(2)
	m.IngestDuration.Observe(0.2)
	m.HTTPRequests.WithLabelValues("/api/weather", "200").Inc()
	m.HTTPDuration.WithLabelValues("/api/weather").Observe(0.01)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, name := range []string{
		"gnweather_ingest_runs_total",
		"gnweather_ingest_records_total",
		"gnweather_ingest_duration_seconds",
		"gnweather_http_requests_total",
		"gnweather_http_request_duration_seconds",
	} {
		assert.True(t, names[name], name)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		iometrics.New(prometheus.NewRegistry())
		iometrics.New(prometheus.NewRegistry())
	})
}
