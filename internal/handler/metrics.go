package handler

import (
	"fmt"
	"net/http"

	"github.com/falci/falci/internal/metrics"
	"github.com/falci/falci/internal/model"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	types := []model.FortuneType{
		model.FortuneTarot,
		model.FortuneCoffee,
		model.FortuneHoroscope,
		model.FortuneDream,
	}
	for _, typ := range types {
		writeMetric(w, "falci_fortunes_generated_total{type=%q} %d\n", typ, snap.Generated[typ])
		writeMetric(w, "falci_generation_failures_total{type=%q} %d\n", typ, snap.GenerationFailed[typ])
	}

	writeMetric(w, "falci_generation_duration_seconds_count %d\n", snap.GenerationDurationCount)
	writeMetric(w, "falci_generation_duration_seconds_sum %.3f\n", float64(snap.GenerationDurationMillis)/1e3)

	writeMetric(w, "falci_fortunes_saved_total %d\n", snap.FortunesSaved)
	writeMetric(w, "falci_fortune_save_failures_total %d\n", snap.FortuneSavesFailed)
	writeMetric(w, "falci_fortunes_deleted_total %d\n", snap.FortunesDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
