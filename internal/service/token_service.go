package service

import (
	"time"

	"github.com/joaobosco/lembretes/internal/config"
	"github.com/joaobosco/lembretes/internal/model"
	"github.com/joaobosco/lembretes/internal/pkg/jwt"
)

// TokenService issues and verifies the bearer tokens handed out at login.
type TokenService struct {
	secret    []byte
	ttl       time.Duration
	expiresIn string
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	ttl, err := jwt.ParseTTL(cfg.ExpiresIn)
	if err != nil {
		return nil, err
	}
	return &TokenService{secret: []byte(cfg.Secret), ttl: ttl, expiresIn: cfg.ExpiresIn}, nil
}

func (s *TokenService) Issue(identity model.Identity) (string, error) {
	return jwt.GenerateToken(identity.ID, identity.Email, s.secret, s.ttl)
}

// Verify returns jwt.ErrTokenExpired or jwt.ErrTokenInvalid on failure.
func (s *TokenService) Verify(token string) (*model.Identity, error) {
	claims, err := jwt.ParseToken(token, s.secret)
	if err != nil {
		return nil, err
	}
	return &model.Identity{ID: claims.ID, Email: claims.Email}, nil
}

// ExpiresIn is the configured lifetime as reported to clients.
func (s *TokenService) ExpiresIn() string {
	return s.expiresIn
}
