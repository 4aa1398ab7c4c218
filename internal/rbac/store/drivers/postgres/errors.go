package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes, class 23 (integrity constraint violation).
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	classIntegrity          = "23"
)

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == codeUniqueViolation:
		return fmt.Errorf("%w: %w", store.ErrAlreadyExists, err)
	case pgErr.Code == codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", store.ErrReferenceMissing, err)
	case strings.HasPrefix(pgErr.Code, classIntegrity):
		return fmt.Errorf("%w: %w", store.ErrConstraint, err)
	}
	return err
}
