package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
)

var roleColumns = []string{"id", "name", "description", "type", "scope", "created_at", "updated_at"}

type rolesRepo struct {
	base
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	return r.getRole(ctx, sq.Eq{"id": id})
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.getRole(ctx, sq.Eq{"name": name})
}

func (r *rolesRepo) getRole(ctx context.Context, where sq.Eq) (domain.Role, error) {
	query, args, err := r.sb.Select(roleColumns...).From("role").Where(where).ToSql()
	if err != nil {
		return domain.Role{}, fmt.Errorf("rolesRepo.getRole: build query: %w", err)
	}

	role, err := scanRole(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	query, args, err := r.sb.Select(roleColumns...).From("role").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("rolesRepo.ListAll: build query: %w", err)
	}
	return queryRoles(ctx, r.db, query, args)
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) (int64, error) {
	now := time.Now().UTC()
	query, args, err := r.sb.
		Insert("role").
		Columns("name", "description", "type", "scope", "created_at", "updated_at").
		Values(
			role.Name,
			mapOptionalString(role.Description),
			mapOptionalString(role.Type),
			mapOptionalString(role.Scope),
			now,
			now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("rolesRepo.CreateRole: build query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func (r *rolesRepo) UpdateRole(ctx context.Context, id int64, ch domain.RoleChanges) error {
	qb := r.sb.Update("role").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	if ch.Name != nil {
		qb = qb.Set("name", *ch.Name)
	}
	if ch.Description != nil {
		qb = qb.Set("description", *ch.Description)
	}
	if ch.Type != nil {
		qb = qb.Set("type", *ch.Type)
	}
	if ch.Scope != nil {
		qb = qb.Set("scope", *ch.Scope)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("rolesRepo.UpdateRole: build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (domain.Role, error) {
	var (
		role                    domain.Role
		description, typ, scope sql.NullString
	)
	err := row.Scan(&role.ID, &role.Name, &description, &typ, &scope, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return domain.Role{}, err
	}
	role.Description = mapNullStringPtr(description)
	role.Type = mapNullStringPtr(typ)
	role.Scope = mapNullStringPtr(scope)
	return role, nil
}

func queryRoles(ctx context.Context, db querier, query string, args []any) ([]domain.Role, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
