package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	svc *Services
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// List returns all users.
func (h *UserHandler) List(ctx context.Context, req *dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	users, err := h.svc.User.List()
	if err != nil {
		return nil, ToAPIError(err)
	}
	if users == nil {
		users = []*news.User{}
	}
	return &dto.ListUsersResponse{Users: users}, nil
}

// Create adds a user.
func (h *UserHandler) Create(ctx context.Context, req *dto.CreateUserRequest) (*news.User, error) {
	u, err := h.svc.User.Create(news.CreateUserParams{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		Role:   req.Role,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	return u, nil
}

// Update partially updates a user.
func (h *UserHandler) Update(ctx context.Context, req *dto.UpdateUserRequest) (*news.User, error) {
	u, err := h.svc.User.Update(req.ID, news.UpdateUserParams{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		Role:   req.Role,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	return u, nil
}

// Delete removes a user. Their articles and comments survive with a nulled
// authorId.
func (h *UserHandler) Delete(ctx context.Context, req *dto.DeleteUserRequest) (*dto.DeletedResponse, error) {
	if err := h.svc.User.Delete(req.ID); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.DeletedResponse{Deleted: true}, nil
}
