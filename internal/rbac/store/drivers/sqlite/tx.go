package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
)

type txStore struct {
	tx *sql.Tx
	base
}

func newTx(tx *sql.Tx, sb sq.StatementBuilderType) *txStore {
	return &txStore{
		tx:   tx,
		base: base{db: tx, sb: sb},
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// The outer DB stays open; Commit or Rollback ends the transaction.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users         { return &usersRepo{t.base} }
func (t *txStore) Roles() store.Roles         { return &rolesRepo{t.base} }
func (t *txStore) UserRoles() store.UserRoles { return &userRolesRepo{t.base} }

// Migrations run on the root store before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }
