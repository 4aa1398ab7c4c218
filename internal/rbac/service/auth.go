package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/pkg/cryptox"
	"github.com/aussiebroadwan/rbac/pkg/jwtx"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

type AuthService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	AccessTTL  time.Duration
}

// Login checks a username and password and issues an access token whose
// subject is the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Token, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	fe := fieldErrors{}
	if username == "" {
		fe["username"] = "is required"
	}
	if password == "" {
		fe["password"] = "is required"
	}
	fe.noNUL("username", &username)
	if err := fe.err("username and password are required"); err != nil {
		return domain.Token{}, err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Same cost as a real check, so unknown names are not faster.
		_ = cryptox.VerifyPassword(password, dummyHash())
		l.Info("login failed", slog.String("username", username), slog.String("reason", "unknown user"))
		return domain.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Token{}, finish(ctx, "AuthService.Login", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.Int64("user_id", user.ID), slog.Any("error", err))
		}
		l.Info("login failed", slog.String("username", username), slog.String("reason", "password mismatch"))
		return domain.Token{}, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(user.Username, s.Issuer, nil, ttl, time.Now())
	token, err := s.KeyManager.Signer().Sign(claims)
	if err != nil {
		return domain.Token{}, apperror.Internal(fmt.Errorf("AuthService.Login: sign: %w", err))
	}

	l.Info("login succeeded", slog.String("username", user.Username), slog.String("jti", claims.ID))
	return domain.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("not-a-real-password")
	if err != nil {
		return ""
	}
	return h
})
