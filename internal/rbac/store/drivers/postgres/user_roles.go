package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
)

type userRolesRepo struct {
	base
}

func (r *userRolesRepo) Assign(ctx context.Context, ur domain.UserRole) (int64, error) {
	query, args, err := r.sb.
		Insert("user_role").
		Columns("user_id", "role_id", "created_at").
		Values(ur.UserID, ur.RoleID, time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("userRolesRepo.Assign: build query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func (r *userRolesRepo) Exists(ctx context.Context, userID, roleID int64) (bool, error) {
	sub := r.sb.Select("1").From("user_role").Where(sq.Eq{"user_id": userID, "role_id": roleID})
	subSQL, subArgs, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("userRolesRepo.Exists: build query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+subSQL+")", subArgs...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRolesRepo) ListRolesForUser(ctx context.Context, userID int64) ([]domain.Role, error) {
	query, args, err := r.sb.
		Select("r.id", "r.name", "r.description", "r.type", "r.scope", "r.created_at", "r.updated_at").
		From("role r").
		Join("user_role ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": userID}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("userRolesRepo.ListRolesForUser: build query: %w", err)
	}
	return queryRoles(ctx, r.db, query, args)
}
