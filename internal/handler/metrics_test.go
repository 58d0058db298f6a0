package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/falci/falci/internal/metrics"
	"github.com/falci/falci/internal/model"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncGenerated(model.FortuneTarot)
	recorder.IncGenerated(model.FortuneTarot)
	recorder.IncGenerationFailed(model.FortuneDream)
	recorder.IncFortuneSaved()
	recorder.IncFortuneDeleted()

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`falci_fortunes_generated_total{type="tarot"} 2`,
		`falci_generation_failures_total{type="dream"} 1`,
		`falci_fortunes_saved_total 1`,
		`falci_fortunes_deleted_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in output:\n%s", want, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
