package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/server/dto"
)

// HistoryHandler serves the store's git commit history.
type HistoryHandler struct {
	svc *Services
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *Services) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// Get lists recent store commits, newest first.
func (h *HistoryHandler) Get(ctx context.Context, req *dto.GetHistoryRequest) (*dto.HistoryResponse, error) {
	if h.svc.Repo == nil {
		return nil, dto.NotFound("history")
	}
	commits, err := h.svc.Repo.History(ctx, req.N)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read history", err)
	}
	return &dto.HistoryResponse{Commits: commits}, nil
}
