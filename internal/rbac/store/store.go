package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrReferenceMissing is a foreign key violation.
	ErrReferenceMissing = errors.New("store: referenced row missing")

	// ErrConstraint is any other constraint violation.
	ErrConstraint = errors.New("store: constraint violation")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so that a Tx exposes the same
// surface as the root store.
type Store interface {
	Users() Users
	Roles() Roles
	UserRoles() UserRoles

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit or
	// Rollback on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing only when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts u and returns its id. ErrAlreadyExists on a
	// duplicate username.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// IsEmpty reports whether no user exists yet.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by id.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts r and returns its id. ErrAlreadyExists on a
	// duplicate name.
	CreateRole(ctx context.Context, r domain.Role) (int64, error)

	// UpdateRole writes the non-nil fields of ch and bumps updated_at.
	// ErrNotFound when id does not exist, ErrAlreadyExists when the new name
	// is taken.
	UpdateRole(ctx context.Context, id int64, ch domain.RoleChanges) error
}

type UserRoles interface {
	// Assign inserts the pair and returns its id. ErrAlreadyExists when the
	// pair is held, ErrReferenceMissing when the user or role is gone.
	Assign(ctx context.Context, ur domain.UserRole) (int64, error)

	Exists(ctx context.Context, userID, roleID int64) (bool, error)

	// ListRolesForUser returns the user's roles ordered by role id.
	ListRolesForUser(ctx context.Context, userID int64) ([]domain.Role, error)
}
