package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
	"github.com/vibebase/vibebase/internal/server/handlers"
	"github.com/vibebase/vibebase/internal/server/ratelimit"
)

func newAuthedServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	store, err := news.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc := handlers.NewServices(store, nil, nil)
	cfg := &handlers.Config{
		Version:           "test",
		JWTSecret:         "test-secret",
		AdminPasswordHash: string(hash),
	}
	ts := httptest.NewServer(NewRouter(svc, cfg, nil, nil))
	t.Cleanup(ts.Close)
	return ts
}

func TestAuthProtectsMutatingRoutes(t *testing.T) {
	ts := newAuthedServer(t)

	// Reads stay open.
	status, _ := do(t, ts, "GET", "/api/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("read without token: %d", status)
	}

	// Mutations require a token.
	status, body := do(t, ts, "POST", "/api/categories", map[string]any{"code": "tech", "name": "Technology"})
	if status != http.StatusUnauthorized || errorCode(t, body) != "UNAUTHORIZED" {
		t.Fatalf("mutation without token: %d %v", status, body)
	}

	// Wrong password is rejected.
	status, body = do(t, ts, "POST", "/api/auth/token", map[string]any{"password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d %v", status, body)
	}

	status, body = do(t, ts, "POST", "/api/auth/token", map[string]any{"password": "hunter2"})
	if status != http.StatusOK {
		t.Fatalf("token: %d %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("empty token")
	}

	payload, _ := json.Marshal(map[string]any{"code": "tech", "name": "Technology"})
	req, err := http.NewRequest("POST", ts.URL+"/api/categories", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mutation with token: %d", resp.StatusCode)
	}

	// Garbage tokens are rejected.
	req, _ = http.NewRequest("DELETE", ts.URL+"/api/categories/cat_tech", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err = ts.Client().Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", resp.StatusCode)
	}
}

func TestValidateToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	cfg := &handlers.Config{JWTSecret: "secret", AdminPasswordHash: string(hash)}
	h := handlers.NewAuthHandler(cfg)
	resp, err := h.Token(t.Context(), &dto.TokenRequest{Password: "pw"})
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if err := handlers.ValidateToken(resp.Token, "secret"); err != nil {
		t.Errorf("ValidateToken: %v", err)
	}
	if err := handlers.ValidateToken(resp.Token, "other-secret"); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestRateLimitOverHTTP(t *testing.T) {
	store, err := news.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc := handlers.NewServices(store, nil, nil)
	cfg := &handlers.Config{Version: "test"}
	limiter := ratelimit.NewLimiter(1, time.Minute, 1)
	defer limiter.Close()
	ts := httptest.NewServer(NewRouter(svc, cfg, limiter, nil))
	t.Cleanup(ts.Close)

	status, _ := do(t, ts, "POST", "/api/categories", map[string]any{"code": "a", "name": "A"})
	if status != http.StatusOK {
		t.Fatalf("first mutation: %d", status)
	}
	status, body := do(t, ts, "POST", "/api/categories", map[string]any{"code": "b", "name": "B"})
	if status != http.StatusTooManyRequests || errorCode(t, body) != "RATE_LIMITED" {
		t.Fatalf("second mutation: %d %v", status, body)
	}

	// Reads are never throttled.
	status, _ = do(t, ts, "GET", "/api/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("read throttled: %d", status)
	}
}
