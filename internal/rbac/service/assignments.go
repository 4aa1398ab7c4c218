package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

type AssignmentsService struct {
	Store store.Store
}

// Assign gives a user a role. Missing users or roles are checked before the
// insert; constraint failures at insert or commit are mapped afterwards.
func (s *AssignmentsService) Assign(ctx context.Context, userID, roleID int64) (domain.UserRole, error) {
	if err := validateIDs(map[string]int64{"user_id": userID, "role_id": roleID}); err != nil {
		return domain.UserRole{}, err
	}

	var assigned domain.UserRole
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return notFoundAs(err, ErrUserOrRoleNotFound)
		}
		if _, err := tx.Roles().GetRoleByID(ctx, roleID); err != nil {
			return notFoundAs(err, ErrUserOrRoleNotFound)
		}

		exists, err := tx.UserRoles().Exists(ctx, userID, roleID)
		if err != nil {
			return err
		}
		if exists {
			return ErrRoleAlreadyAssigned
		}

		ur := domain.UserRole{UserID: userID, RoleID: roleID}
		ur.ID, err = tx.UserRoles().Assign(ctx, ur)
		assigned = ur
		return err
	})

	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		err = ErrRoleAlreadyAssigned
	case errors.Is(err, store.ErrReferenceMissing):
		err = ErrUserOrRoleNotFound
	case errors.Is(err, store.ErrConstraint):
		slogx.FromContext(ctx).Warn("assignment rejected by constraint", slog.Any("error", err))
		err = ErrAssignmentRejected
	}
	if err != nil {
		return domain.UserRole{}, finish(ctx, "AssignmentsService.Assign", err)
	}

	slogx.FromContext(ctx).Info("role assigned",
		slog.Int64("user_id", userID),
		slog.Int64("role_id", roleID),
	)
	return assigned, nil
}

// ListForUser returns the roles a user holds, ordered by role id.
func (s *AssignmentsService) ListForUser(ctx context.Context, userID int64) ([]domain.Role, error) {
	if err := validateIDs(map[string]int64{"user_id": userID}); err != nil {
		return nil, err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return nil, finish(ctx, "AssignmentsService.ListForUser", notFoundAs(err, ErrUserNotFound))
	}

	roles, err := s.Store.UserRoles().ListRolesForUser(ctx, userID)
	if err != nil {
		return nil, finish(ctx, "AssignmentsService.ListForUser", err)
	}
	return roles, nil
}

func notFoundAs(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}
