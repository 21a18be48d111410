package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()
	a, b := New(), New()
	a.JobSubmitted()
	if got := testutil.ToFloat64(b.jobsSubmitted); got != 0 {
		t.Errorf("second instance saw %v submissions", got)
	}
}

func TestMetrics_JobLifecycle(t *testing.T) {
	t.Parallel()
	m := New()

	m.JobSubmitted()
	m.JobSubmitted()
	m.QueueDepth(2)
	m.JobStarted(time.Millisecond)
	m.JobStarted(time.Millisecond)
	if got := testutil.ToFloat64(m.busyWorkers); got != 2 {
		t.Errorf("busy_workers = %v, want 2", got)
	}

	m.JobFinished(true, 5*time.Millisecond, 3)
	m.JobFinished(false, time.Millisecond, 0)
	m.QueueDepth(0)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"submitted", testutil.ToFloat64(m.jobsSubmitted), 2},
		{"completed ok", testutil.ToFloat64(m.jobsCompleted.WithLabelValues(OutcomeOK)), 1},
		{"completed error", testutil.ToFloat64(m.jobsCompleted.WithLabelValues(OutcomeError)), 1},
		{"busy", testutil.ToFloat64(m.busyWorkers), 0},
		{"queue depth", testutil.ToFloat64(m.queueDepth), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetrics_Requests(t *testing.T) {
	t.Parallel()
	m := New()
	m.IncrementActiveRequests()
	m.ObserveRequest("/v1/batch", http.StatusOK)
	m.ObserveRequest("/v1/batch", http.StatusBadRequest)
	m.ObserveRequest("/v1/batch", http.StatusOK)
	m.DecrementActiveRequests()

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/v1/batch", "200")); got != 2 {
		t.Errorf("requests 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.activeRequests); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := New()
	m.JobSubmitted()
	m.JobFinished(true, time.Millisecond, 1)
	m.ObserveRequest("/healthz", http.StatusOK)

	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, name := range []string{
		"logmap_jobs_submitted_total",
		"logmap_jobs_completed_total",
		"logmap_queue_depth",
		"logmap_busy_workers",
		"logmap_batch_seconds",
		"logmap_requests_total",
		"logmap_active_requests",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("exposition missing %s", name)
		}
	}
}
