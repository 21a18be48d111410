package server

import (
	"bytes"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/logmap/internal/dispatch"
)

func TestHandleCalc(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/calc", map[string]int64{
		"seed": 1 << 32, "iterations": 1, "modulus": 1_000_000_007, "multiplier": 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[valueResponse](t, rec); got.Value != 294967268 {
		t.Errorf("value = %d, want 294967268", got.Value)
	}
}

func TestHandleBatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want []int64
	}{
		{"list", `{"input":[1,2,3],"iterations":3,"modulus":97,"multiplier":4}`, []int64{24, 72, 0}},
		{"range", `{"input":{"first":1,"last":3},"iterations":3,"modulus":97,"multiplier":4}`, []int64{24, 72, 0}},
		{"empty list", `{"input":[],"iterations":3,"modulus":97,"multiplier":4}`, []int64{}},
		{"zero iterations", `{"input":[5,6],"iterations":0,"modulus":97,"multiplier":4}`, []int64{5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			rec := do(t, s, http.MethodPost, "/v1/batch", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			got := decode[valuesResponse](t, rec)
			if !slices.Equal(got.Values, tt.want) || got.Count != len(tt.want) {
				t.Errorf("got %+v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleBatchBytes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/batch/bytes", map[string]any{
		"data": []byte{1, 2, 3}, "iterations": 3, "modulus": 97, "multiplier": 4,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[valuesResponse](t, rec); !slices.Equal(got.Values, []int64{24, 72, 0}) {
		t.Errorf("values = %v", got.Values)
	}
}

func TestHandleProject(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/project", `{"input":[256,1,-1]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[projectResponse](t, rec)
	if !bytes.Equal(got.Data, []byte{0, 1, 255}) || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestHandleIdentity(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/identity", `{"input":{"first":4,"last":6},"modulus":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[valuesResponse](t, rec); !slices.Equal(got.Values, []int64{4, 5, 6}) {
		t.Errorf("values = %v", got.Values)
	}
}

func TestHandlers_BadRequests(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed JSON", "/v1/batch", `{"input":`},
		{"scalar input", "/v1/batch", `{"input":42,"iterations":1,"modulus":97,"multiplier":4}`},
		{"mixed list", "/v1/batch", `{"input":[1,"two"],"iterations":1,"modulus":97,"multiplier":4}`},
		{"zero modulus", "/v1/batch", `{"input":[1],"iterations":1,"modulus":0,"multiplier":4}`},
		{"zero modulus calc", "/v1/calc", `{"seed":1,"iterations":1,"modulus":0,"multiplier":4}`},
		{"negative iterations", "/v1/calc", `{"seed":1,"iterations":-1,"modulus":97,"multiplier":4}`},
		{"huge range", "/v1/batch", `{"input":{"first":0,"last":9000000000},"iterations":1,"modulus":97,"multiplier":4}`},
		{"huge async range", "/v1/jobs", `{"input":{"first":0,"last":9000000000},"iterations":1,"modulus":97,"multiplier":4}`},
		{"not base64", "/v1/project", `{"input":"***"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
			}
			if got := decode[map[string]string](t, rec); got["error"] == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestHandleInit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/init", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first init status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[statusResponse](t, rec); !got.Configured || got.RuntimeWorkers < 1 {
		t.Errorf("got %+v", got)
	}

	rec = do(t, s, http.MethodPost, "/v1/init", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("second init status = %d, want 409", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	got := decode[statusResponse](t, do(t, s, http.MethodGet, "/v1/status", nil))
	if got.Configured {
		t.Error("status must not configure the runtime")
	}
	if got.PoolSize != dispatch.DefaultWorkers {
		t.Errorf("pool size = %d, want %d", got.PoolSize, dispatch.DefaultWorkers)
	}

	do(t, s, http.MethodPost, "/v1/batch", `{"input":[1,2,3],"iterations":3,"modulus":97,"multiplier":4}`)
	if got = decode[statusResponse](t, do(t, s, http.MethodGet, "/v1/status", nil)); got.Configured {
		t.Error("a synchronous batch must not configure the runtime")
	}

	sub := decode[jobResponse](t, do(t, s, http.MethodPost, "/v1/jobs", `{"input":[1,2,3],"iterations":3,"modulus":97,"multiplier":4}`))
	do(t, s, http.MethodGet, "/v1/jobs/"+sub.JobID+"?wait=5s", nil)
	got = decode[statusResponse](t, do(t, s, http.MethodGet, "/v1/status", nil))
	if !got.Configured || got.TrackedJobs != 1 {
		t.Errorf("after an async job: %+v", got)
	}
}

func TestJobs_SubmitAndFetch(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/jobs", `{"input":[1,2,3],"iterations":3,"modulus":97,"multiplier":4}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body)
	}
	loc := rec.Header().Get("Location")
	sub := decode[jobResponse](t, rec)
	if sub.State != "queued" || !strings.HasSuffix(loc, sub.JobID) {
		t.Fatalf("submit = %+v, location %q", sub, loc)
	}

	rec = do(t, s, http.MethodGet, loc+"?wait=5s", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d: %s", rec.Code, rec.Body)
	}
	got := decode[jobResponse](t, rec)
	if got.State != "delivered" || !slices.Equal(got.Values, []int64{24, 72, 0}) {
		t.Errorf("fetch = %+v", got)
	}
}

func TestJobs_FailureIsDelivered(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/jobs", `{"input":42,"iterations":3,"modulus":97,"multiplier":4}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body)
	}
	sub := decode[jobResponse](t, rec)

	got := decode[jobResponse](t, do(t, s, http.MethodGet, "/v1/jobs/"+sub.JobID+"?wait=5s", nil))
	if got.State != "delivered_error" || got.Error == "" || len(got.Values) != 0 {
		t.Errorf("fetch = %+v", got)
	}
}

func TestJobs_Lookup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		path string
		want int
	}{
		{"unknown", "/v1/jobs/01ARZ3NDEKTSV4RRFFQ69G5FAV", http.StatusNotFound},
		{"malformed id", "/v1/jobs/not-a-ulid", http.StatusBadRequest},
		{"bad wait", "/v1/jobs/01ARZ3NDEKTSV4RRFFQ69G5FAV?wait=soon", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			if rec := do(t, s, http.MethodGet, tt.path, nil); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
