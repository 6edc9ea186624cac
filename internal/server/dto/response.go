package dto

import (
	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/storage/gitver"
)

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// TokenResponse carries an admin bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// The news view types (Category, Article, Comment, User) are the API
// contract per the data model: their JSON shape is what the presentation
// layer consumes, so they are returned directly instead of being mirrored
// field by field.

// ListCategoriesResponse is the response to ListCategories.
type ListCategoriesResponse struct {
	Categories []*news.Category `json:"categories"`
}

// ListUsersResponse is the response to ListUsers.
type ListUsersResponse struct {
	Users []*news.User `json:"users"`
}

// ListArticlesResponse is a page of articles plus the total match count.
type ListArticlesResponse struct {
	Articles []*news.Article `json:"articles"`
	Total    int             `json:"total"`
}

// ListCommentsResponse is an article's comment forest.
type ListCommentsResponse struct {
	Comments []*news.Comment `json:"comments"`
}

// DeletedResponse acknowledges a delete.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// HistoryResponse lists recent store commits.
type HistoryResponse struct {
	Commits []*gitver.Commit `json:"commits"`
}

// SubscribedResponse acknowledges a push subscription change.
type SubscribedResponse struct {
	Ok bool `json:"ok"`
}
