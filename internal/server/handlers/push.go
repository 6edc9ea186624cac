package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/server/dto"
)

// PushHandler manages web push subscriptions.
type PushHandler struct {
	svc *Services
}

// NewPushHandler creates a new push handler.
func NewPushHandler(svc *Services) *PushHandler {
	return &PushHandler{svc: svc}
}

// Subscribe stores a push subscription.
func (h *PushHandler) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribedResponse, error) {
	if h.svc.Notifier == nil {
		return nil, dto.NotFound("push")
	}
	if err := h.svc.Notifier.Subscribe(req.Endpoint, req.P256dh, req.Auth); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.SubscribedResponse{Ok: true}, nil
}

// Unsubscribe removes a push subscription.
func (h *PushHandler) Unsubscribe(ctx context.Context, req *dto.UnsubscribeRequest) (*dto.SubscribedResponse, error) {
	if h.svc.Notifier == nil {
		return nil, dto.NotFound("push")
	}
	if err := h.svc.Notifier.Unsubscribe(req.Endpoint); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.SubscribedResponse{Ok: true}, nil
}
