package service

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/joaobosco/lembretes/internal/model"
	appErr "github.com/joaobosco/lembretes/internal/pkg/errors"
	"github.com/joaobosco/lembretes/internal/pkg/password"
	"github.com/joaobosco/lembretes/internal/repo"
)

const (
	msgMissingCredentials = "Informe email e password."
	msgBadCredentials     = "Credenciais inválidas"
	msgLoginFailed        = "Falha ao autenticar."
	msgLoginOK            = "Login bem-sucedido"
)

type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresIn string    `json:"expiresIn"`
	User      LoginUser `json:"user"`
}

type AuthService struct {
	users  *repo.UserRepo
	tokens *TokenService
	now    func() time.Time
}

func NewAuthService(users *repo.UserRepo, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// Login checks the credentials and issues a token. The last_login update is
// best effort: a failure is logged and the login still succeeds.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, appErr.Invalid(msgMissingCredentials)
	}
	cred, err := s.users.GetCredentialByEmail(ctx, email)
	switch {
	case appErr.IsNotFound(err):
		_ = password.CompareDummy(plainPassword)
		return nil, appErr.Unauthorized(msgBadCredentials)
	case err != nil:
		return nil, appErr.Internal(msgLoginFailed, err)
	}
	if cred.PasswordHash == nil || *cred.PasswordHash == "" {
		_ = password.CompareDummy(plainPassword)
		return nil, appErr.Unauthorized(msgBadCredentials)
	}
	if err := password.Compare(*cred.PasswordHash, plainPassword); err != nil {
		return nil, appErr.Unauthorized(msgBadCredentials)
	}
	token, err := s.tokens.Issue(model.Identity{ID: cred.ID, Email: cred.Email})
	if err != nil {
		return nil, appErr.Internal(msgLoginFailed, err)
	}
	if err := s.users.TouchLastLogin(ctx, cred.ID, s.now().UTC()); err != nil {
		logutil.GetLogger(ctx).Warn("update last_login failed", zap.String("user_id", cred.ID), zap.Error(err))
	}
	return &LoginResult{
		Message:   msgLoginOK,
		Token:     token,
		ExpiresIn: s.tokens.ExpiresIn(),
		User:      LoginUser{ID: cred.ID, Name: cred.Name, Email: cred.Email},
	}, nil
}

// SetPassword stores a new bcrypt hash for the user owning email.
func (s *AuthService) SetPassword(ctx context.Context, email, plainPassword string) error {
	if strings.TrimSpace(email) == "" || plainPassword == "" {
		return appErr.Invalid(msgMissingCredentials)
	}
	hash, err := hashPassword(plainPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPasswordByEmail(ctx, strings.ToLower(strings.TrimSpace(email)), hash); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.NotFound(msgUserNotFound)
		}
		return err
	}
	return nil
}
