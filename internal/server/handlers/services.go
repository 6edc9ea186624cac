// Package handlers implements the API endpoint handlers.
//
// Handlers are plain functions (ctx, request) -> (response, error) bound to
// routes through the generic server.Wrap adapter. Service errors are
// converted into dto.APIError at this boundary.
package handlers

import (
	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/notify"
	"github.com/vibebase/vibebase/internal/storage/gitver"
)

// Services bundles everything handlers need.
type Services struct {
	Category *news.CategoryService
	User     *news.UserService
	Article  *news.ArticleService
	Comment  *news.CommentService
	Stats    *news.StatsService

	// Notifier is nil when web push is not configured.
	Notifier *notify.Notifier
	// Repo is nil when git versioning is disabled.
	Repo *gitver.Repo
}

// NewServices wires the service layer over one store.
func NewServices(store *news.Store, notifier *notify.Notifier, repo *gitver.Repo) *Services {
	return &Services{
		Category: news.NewCategoryService(store),
		User:     news.NewUserService(store),
		Article:  news.NewArticleService(store),
		Comment:  news.NewCommentService(store),
		Stats:    news.NewStatsService(store),
		Notifier: notifier,
		Repo:     repo,
	}
}

// Config carries the server-level settings handlers consult.
type Config struct {
	Version string
	// JWTSecret signs admin bearer tokens. Empty disables auth.
	JWTSecret string
	// AdminPasswordHash is the bcrypt hash checked by the token endpoint.
	AdminPasswordHash string
}

// AuthEnabled reports whether mutating endpoints require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}
