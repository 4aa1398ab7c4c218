package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/jackc/pgx/v5"
)

// txStore keeps the context the transaction was started with, since
// store.Tx ends without one.
type txStore struct {
	ctx context.Context
	tx  pgx.Tx
	base
}

func newTx(ctx context.Context, tx pgx.Tx, sb sq.StatementBuilderType) *txStore {
	return &txStore{
		ctx:  context.WithoutCancel(ctx),
		tx:   tx,
		base: base{db: tx, sb: sb},
	}
}

func (t *txStore) Commit() error { return t.tx.Commit(t.ctx) }

// Rollback after Commit is a no-op, matching database/sql.
func (t *txStore) Rollback() error {
	err := t.tx.Rollback(t.ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Users() store.Users         { return &usersRepo{t.base} }
func (t *txStore) Roles() store.Roles         { return &rolesRepo{t.base} }
func (t *txStore) UserRoles() store.UserRoles { return &userRolesRepo{t.base} }
