package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	svc *Services
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc *Services) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List returns an article's comment forest.
func (h *CommentHandler) List(ctx context.Context, req *dto.ListCommentsRequest) (*dto.ListCommentsResponse, error) {
	comments, err := h.svc.Comment.ListForArticle(req.NewsID)
	if err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.ListCommentsResponse{Comments: comments}, nil
}

// Create adds a comment (or a reply, when parentId is set).
func (h *CommentHandler) Create(ctx context.Context, req *dto.CreateCommentRequest) (*news.Comment, error) {
	c, err := h.svc.Comment.Create(news.CreateCommentParams{
		NewsID:   req.NewsID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	return c, nil
}

// Delete removes a comment and its reply chain.
func (h *CommentHandler) Delete(ctx context.Context, req *dto.DeleteCommentRequest) (*dto.DeletedResponse, error) {
	if err := h.svc.Comment.Delete(req.ID); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.DeletedResponse{Deleted: true}, nil
}
