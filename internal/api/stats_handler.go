package api

import (
	"context"
	"net/http"

	"github.com/alexivanou/worldwise/internal/stats"
	"go.uber.org/zap"
)

// StatsCollector is implemented by *stats.Collector
type StatsCollector interface {
	Collect(ctx context.Context) (*stats.Stats, error)
}

// StatsHandler serves GET /stats
type StatsHandler struct {
	base      *Handler
	collector StatsCollector
}

func NewStatsHandler(collector StatsCollector, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{base: &Handler{logger: logger}, collector: collector}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.collector.Collect(r.Context())
	if err != nil {
		h.base.internalError(w, r, "Error collecting statistics", err)
		return
	}
	h.base.writeJSON(w, r, http.StatusOK, s)
}
