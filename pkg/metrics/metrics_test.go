package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSourceCall(t *testing.T) {
	m := New("mc")

	m.ObserveSourceCall("cron_list", "success")
	m.ObserveSourceCall("cron_list", "success")
	m.ObserveSourceCall("cron_list", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sourceCalls.WithLabelValues("cron_list", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceCalls.WithLabelValues("cron_list", "error")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New("mc")
	m.ObserveRequest("/api/schedule", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `mc_http_requests_total{route="/api/schedule",status="200"} 1`))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSourceCall("cron_list", "success")
		m.SetBreakerState("openclaw", 2)
		m.ObserveRequest("/", 200, time.Second)
		m.ObserveJobRun("sessions_sync", "success")
	})
	assert.Nil(t, m.Registry())
}

func TestNewServer_ServesOnlyMetrics(t *testing.T) {
	m := New("worker")
	m.ObserveJobRun("sessions_sync", "success")

	srv := m.NewServer(":0")
	assert.Equal(t, ":0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `worker_job_runs_total{job="sessions_sync",outcome="success"} 1`)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 404, rec.Code)
}
