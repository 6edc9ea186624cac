package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc *Services
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc *Services) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List returns all categories with computed article counts.
func (h *CategoryHandler) List(ctx context.Context, req *dto.ListCategoriesRequest) (*dto.ListCategoriesResponse, error) {
	categories, err := h.svc.Category.List()
	if err != nil {
		return nil, ToAPIError(err)
	}
	if categories == nil {
		categories = []*news.Category{}
	}
	return &dto.ListCategoriesResponse{Categories: categories}, nil
}

// Create adds a category.
func (h *CategoryHandler) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*news.Category, error) {
	c, err := h.svc.Category.Create(news.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Slug:        req.Slug,
		Code:        req.Code,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	return c, nil
}

// Update partially updates a category.
func (h *CategoryHandler) Update(ctx context.Context, req *dto.UpdateCategoryRequest) (*news.Category, error) {
	c, err := h.svc.Category.Update(req.ID, news.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Slug:        req.Slug,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	return c, nil
}

// Delete removes a category unless an article still references it.
func (h *CategoryHandler) Delete(ctx context.Context, req *dto.DeleteCategoryRequest) (*dto.DeletedResponse, error) {
	if err := h.svc.Category.Delete(req.ID); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.DeletedResponse{Deleted: true}, nil
}
