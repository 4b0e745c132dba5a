package store

import (
	"context"
	"errors"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row does not exist or is not
	// visible to the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects an
	// insert, such as registering a taken username.
	ErrDuplicate = errors.New("record already exists")
)

// pgxIConn is the subset of pgxpool.Pool the store needs; tests can
// substitute a transaction or a lighter fake.
type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// Store bundles all database access for users, sessions and the term
// embedding cache behind one connection pool.
type Store struct {
	conn pgxIConn
}

func NewStore(conn pgxIConn) *Store {
	return &Store{conn: conn}
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
