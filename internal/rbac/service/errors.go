package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/pkg/slogx"
)

var (
	ErrRoleNameTaken = apperror.New(apperror.KindConflict, "role_name_taken", "a role with this name already exists")
	ErrRoleNotFound  = apperror.New(apperror.KindNotFound, "role_not_found", "role not found")

	ErrUserNotFound        = apperror.New(apperror.KindNotFound, "user_not_found", "user not found")
	ErrUserOrRoleNotFound  = apperror.New(apperror.KindNotFound, "user_or_role_not_found", "user or role not found")
	ErrRoleAlreadyAssigned = apperror.New(apperror.KindConflict, "role_already_assigned", "the user already has this role")

	// ErrAssignmentRejected covers constraint failures at commit that cannot
	// be told apart. The message is deliberately imprecise.
	ErrAssignmentRejected = apperror.New(apperror.KindConflict, "assignment_rejected",
		"user or role not found, or role already assigned")

	ErrUsernameTaken      = apperror.New(apperror.KindConflict, "username_taken", "username already taken")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid_credentials", "invalid username or password")
)

// finish passes *apperror.AppError values through and turns anything else
// into a logged internal error. The cause never leaves the service.
func finish(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	slogx.FromContext(ctx).Error("unexpected store failure",
		slog.String("op", op),
		slog.Any("error", err),
	)
	return apperror.Internal(fmt.Errorf("%s: %w", op, err))
}
