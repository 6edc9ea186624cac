package handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibebase/vibebase/internal/server/dto"
)

// tokenTTL is how long an admin bearer token stays valid.
const tokenTTL = 24 * time.Hour

// AuthHandler issues admin bearer tokens.
type AuthHandler struct {
	cfg *Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(cfg *Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Token checks the admin password and returns a signed JWT.
func (h *AuthHandler) Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if !h.cfg.AuthEnabled() {
		return nil, dto.NotFound("auth")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, dto.Unauthorized()
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return nil, dto.InternalWithError("Failed to sign token", err)
	}
	return &dto.TokenResponse{Token: signed}, nil
}

// ValidateToken parses and verifies an admin bearer token.
func ValidateToken(tokenString, secret string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return dto.Unauthorized()
	}
	return nil
}
