package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

type RolesService struct {
	Store store.Store
}

type CreateRoleInput struct {
	Name        *string
	Description *string
	Type        *string
	Scope       *string
}

// Create inserts a role. Names are unique: a taken name is reported the same
// way whether the pre-check or the unique index catches it.
func (s *RolesService) Create(ctx context.Context, in CreateRoleInput) (domain.Role, error) {
	if err := validateRoleFields(&in.Name, in.Description, in.Type, in.Scope, true); err != nil {
		return domain.Role{}, err
	}

	var created domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureNameFree(ctx, tx, *in.Name, 0); err != nil {
			return err
		}

		id, err := tx.Roles().CreateRole(ctx, domain.Role{
			Name:        *in.Name,
			Description: in.Description,
			Type:        in.Type,
			Scope:       in.Scope,
		})
		if err != nil {
			return err
		}

		created, err = tx.Roles().GetRoleByID(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		err = ErrRoleNameTaken
	}
	if err != nil {
		return domain.Role{}, finish(ctx, "RolesService.Create", err)
	}

	slogx.FromContext(ctx).Info("role created",
		slog.Int64("role_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// Update applies a partial change. An empty change returns the role as it
// is without writing.
func (s *RolesService) Update(ctx context.Context, id int64, ch domain.RoleChanges) (domain.Role, error) {
	if id <= 0 {
		return domain.Role{}, ErrRoleNotFound
	}
	if err := validateRoleFields(&ch.Name, ch.Description, ch.Type, ch.Scope, false); err != nil {
		return domain.Role{}, err
	}

	var updated domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Roles().GetRoleByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoleNotFound
		}
		if err != nil {
			return err
		}

		if ch.IsEmpty() {
			updated = current
			return nil
		}

		if ch.Name != nil && *ch.Name != current.Name {
			if err := ensureNameFree(ctx, tx, *ch.Name, id); err != nil {
				return err
			}
		}

		if err := tx.Roles().UpdateRole(ctx, id, ch); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRoleNotFound
			}
			return err
		}

		updated, err = tx.Roles().GetRoleByID(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		err = ErrRoleNameTaken
	}
	if err != nil {
		return domain.Role{}, finish(ctx, "RolesService.Update", err)
	}
	return updated, nil
}

// ListAll returns every role in insertion order.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.Store.Roles().ListAll(ctx)
	if err != nil {
		return nil, finish(ctx, "RolesService.ListAll", err)
	}
	return roles, nil
}

// ensureNameFree fails when a role other than self already uses name.
func ensureNameFree(ctx context.Context, tx store.Tx, name string, self int64) error {
	existing, err := tx.Roles().GetRoleByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrRoleNameTaken
	}
	return nil
}
