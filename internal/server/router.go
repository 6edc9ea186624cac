// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/vibebase/vibebase/internal/server/handlers"
	"github.com/vibebase/vibebase/internal/server/ipgeo"
	"github.com/vibebase/vibebase/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router. All endpoints live under
// /api. geo and limiter may be nil.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limiter *ratelimit.Limiter, geo *ipgeo.Checker) http.Handler {
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(cfg.Version)
	authh := handlers.NewAuthHandler(cfg)
	cath := handlers.NewCategoryHandler(svc)
	uh := handlers.NewUserHandler(svc)
	ah := handlers.NewArticleHandler(svc)
	ch := handlers.NewCommentHandler(svc)
	sth := handlers.NewStatsHandler(svc)
	sch := handlers.NewSchemaHandler()
	hih := handlers.NewHistoryHandler(svc)
	ph := handlers.NewPushHandler(svc)

	mux.Handle("GET /api/health", WrapOpen(hh.Health, svc, limiter))
	mux.Handle("POST /api/auth/token", WrapOpen(authh.Token, svc, limiter))

	mux.Handle("GET /api/categories", Wrap(cath.List, svc, cfg, limiter))
	mux.Handle("POST /api/categories", Wrap(cath.Create, svc, cfg, limiter))
	mux.Handle("PATCH /api/categories/{id}", Wrap(cath.Update, svc, cfg, limiter))
	mux.Handle("DELETE /api/categories/{id}", Wrap(cath.Delete, svc, cfg, limiter))

	mux.Handle("GET /api/users", Wrap(uh.List, svc, cfg, limiter))
	mux.Handle("POST /api/users", Wrap(uh.Create, svc, cfg, limiter))
	mux.Handle("PATCH /api/users/{id}", Wrap(uh.Update, svc, cfg, limiter))
	mux.Handle("DELETE /api/users/{id}", Wrap(uh.Delete, svc, cfg, limiter))

	mux.Handle("GET /api/articles", Wrap(ah.List, svc, cfg, limiter))
	mux.Handle("POST /api/articles", Wrap(ah.Create, svc, cfg, limiter))
	mux.Handle("GET /api/articles/{id}", Wrap(ah.Get, svc, cfg, limiter))
	mux.Handle("PATCH /api/articles/{id}", Wrap(ah.Update, svc, cfg, limiter))
	mux.Handle("DELETE /api/articles/{id}", Wrap(ah.Delete, svc, cfg, limiter))

	mux.Handle("GET /api/articles/{id}/comments", Wrap(ch.List, svc, cfg, limiter))
	mux.Handle("POST /api/articles/{id}/comments", Wrap(ch.Create, svc, cfg, limiter))
	mux.Handle("DELETE /api/comments/{id}", Wrap(ch.Delete, svc, cfg, limiter))

	mux.Handle("GET /api/stats", Wrap(sth.Get, svc, cfg, limiter))
	mux.Handle("GET /api/schema", Wrap(sch.Get, svc, cfg, limiter))
	mux.Handle("GET /api/history", Wrap(hih.Get, svc, cfg, limiter))

	mux.Handle("POST /api/push/subscriptions", WrapOpen(ph.Subscribe, svc, limiter))
	mux.Handle("DELETE /api/push/subscriptions", WrapOpen(ph.Unsubscribe, svc, limiter))

	return RequestLogger(geo)(mux)
}
