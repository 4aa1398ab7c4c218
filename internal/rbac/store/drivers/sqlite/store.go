package sqlite

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	_ "modernc.org/sqlite"
)

// Connection pragmas. They go in the DSN so every pooled connection gets
// them, not only the first one. Times are written in a format SQLite's own
// date functions understand.
const pragmas = "_pragma=foreign_keys(1)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_txlock=immediate" +
	"&_time_format=sqlite"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// base holds what every repository needs: something to run SQL on and a
// statement builder.
type base struct {
	db querier
	sb sq.StatementBuilderType
}

type Store struct {
	db *sql.DB
	base
}

// NewStore opens the database at path. ":memory:" gives a private
// in-memory database pinned to a single connection.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, err
	}

	// Each connection to :memory: is its own database.
	if isMemory(path) {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:   db,
		base: base{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)},
	}, nil
}

func buildDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + pragmas
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts an immediate transaction, so writers queue on the busy timeout
// instead of failing on lock upgrade.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.sb), nil
}

// WithTx runs fn in a transaction and commits when it returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// No-op after a successful commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return mapWriteError(tx.Commit())
}

func (s *Store) Users() store.Users         { return &usersRepo{s.base} }
func (s *Store) Roles() store.Roles         { return &rolesRepo{s.base} }
func (s *Store) UserRoles() store.UserRoles { return &userRolesRepo{s.base} }
