package transport

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/metrics"
)

type MetricsHandler struct {
	stats *metrics.Store
}

func NewMetricsHandler(stats *metrics.Store) *MetricsHandler {
	return &MetricsHandler{stats: stats}
}

func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.stats.Snapshot(), http.StatusOK)
}
