package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agbru/logmap/internal/engine"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/metrics"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	m := metrics.New()
	eng := engine.New(engine.Options{Workers: 4, Grain: 1, Recorder: m})
	t.Cleanup(eng.Close)
	return New(":0", eng, m, newTestLogger(), opts...)
}

// do sends a request through the full router.
func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestPanicRecovery(t *testing.T) {
	s := newTestServer(t)
	s.Router().Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	})

	rec := do(t, s, http.MethodGet, "/panic", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[healthResponse](t, rec); got.Status != "ok" {
		t.Errorf("status = %q", got.Status)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(t)
	s.addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}
