package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/pkg/cryptox"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

type UsersService struct {
	Store store.Store
}

// Create registers a user with an argon2id password hash.
func (s *UsersService) Create(ctx context.Context, username, password string) (domain.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, apperror.Internal(fmt.Errorf("UsersService.Create: hash: %w", err))
	}

	var created domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByUsername(ctx, username)
		switch {
		case err == nil:
			return ErrUsernameTaken
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		id, err := tx.Users().CreateUser(ctx, domain.User{Username: username, PasswordHash: hash})
		if err != nil {
			return err
		}
		created, err = tx.Users().GetUserByID(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		err = ErrUsernameTaken
	}
	if err != nil {
		return domain.User{}, finish(ctx, "UsersService.Create", err)
	}

	slogx.FromContext(ctx).Info("user created",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username),
	)
	return created, nil
}

// EnsureAdmin creates the initial user when none exists yet. It does
// nothing when either credential is empty or users already exist.
func (s *UsersService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("UsersService.EnsureAdmin: %w", err)
	}
	if !empty {
		return false, nil
	}

	if _, err := s.Create(ctx, username, password); err != nil {
		// Another instance seeded it first.
		if errors.Is(err, ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
