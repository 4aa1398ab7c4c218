package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
)

type usersRepo struct {
	base
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, sq.Eq{"username": username})
}

func (r *usersRepo) getUser(ctx context.Context, where sq.Eq) (domain.User, error) {
	query, args, err := r.sb.
		Select("id", "username", "password_hash", "created_at").
		From(`"user"`).
		Where(where).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("usersRepo.getUser: build query: %w", err)
	}

	var u domain.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	query, args, err := r.sb.
		Insert(`"user"`).
		Columns("username", "password_hash", "created_at").
		Values(u.Username, u.PasswordHash, time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("usersRepo.CreateUser: build query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(`"user"`).ToSql()
	if err != nil {
		return false, fmt.Errorf("usersRepo.IsEmpty: build query: %w", err)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
