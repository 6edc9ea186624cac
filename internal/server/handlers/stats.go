package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// StatsHandler handles the dashboard statistics endpoint.
type StatsHandler struct {
	svc *Services
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *Services) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get computes statistics from a fresh read of every collection.
func (h *StatsHandler) Get(ctx context.Context, req *dto.GetStatsRequest) (*news.Stats, error) {
	stats, err := h.svc.Stats.Get()
	if err != nil {
		return nil, ToAPIError(err)
	}
	return stats, nil
}
