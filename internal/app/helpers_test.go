package app

import (
	"io"
	"net/http/httptest"

	"github.com/agbru/logmap/internal/metrics"
)

func dumpMetrics(m *metrics.Metrics, w io.Writer) error {
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest("GET", "/metrics", nil))
	_, err := io.Copy(w, rec.Body)
	return err
}
