package handlers

import (
	"context"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	svc *Services
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(svc *Services) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List returns a filtered, paginated page of populated articles.
func (h *ArticleHandler) List(ctx context.Context, req *dto.ListArticlesRequest) (*dto.ListArticlesResponse, error) {
	result, err := h.svc.Article.List(news.ListArticlesParams{
		Limit:      req.Limit,
		Offset:     req.Offset,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Status:     req.Status,
		Search:     req.Search,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	articles := result.Articles
	if articles == nil {
		articles = []*news.Article{}
	}
	return &dto.ListArticlesResponse{Articles: articles, Total: result.Total}, nil
}

// Get returns one populated article.
func (h *ArticleHandler) Get(ctx context.Context, req *dto.GetArticleRequest) (*news.Article, error) {
	a, err := h.svc.Article.Get(req.ID)
	if err != nil {
		return nil, ToAPIError(err)
	}
	return a, nil
}

// Create adds an article after validating its foreign keys. Publishing
// immediately triggers a push notification.
func (h *ArticleHandler) Create(ctx context.Context, req *dto.CreateArticleRequest) (*news.Article, error) {
	a, err := h.svc.Article.Create(news.CreateArticleParams{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Status:     req.Status,
		Tags:       req.Tags,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	if a.Status == news.StatusPublished {
		h.svc.Notifier.ArticlePublished(ctx, a)
	}
	return a, nil
}

// Update partially updates an article. A transition to published triggers a
// push notification.
func (h *ArticleHandler) Update(ctx context.Context, req *dto.UpdateArticleRequest) (*news.Article, error) {
	a, published, err := h.svc.Article.Update(req.ID, news.UpdateArticleParams{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		Status:     req.Status,
		Tags:       req.Tags,
	})
	if err != nil {
		return nil, ToAPIError(err)
	}
	if published {
		h.svc.Notifier.ArticlePublished(ctx, a)
	}
	return a, nil
}

// Delete removes an article and cascades to its comments.
func (h *ArticleHandler) Delete(ctx context.Context, req *dto.DeleteArticleRequest) (*dto.DeletedResponse, error) {
	if err := h.svc.Article.Delete(req.ID); err != nil {
		return nil, ToAPIError(err)
	}
	return &dto.DeletedResponse{Deleted: true}, nil
}
