package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate is returned when an insert or update violates a unique constraint
	ErrDuplicate = errors.New("record violates a unique constraint")
	// ErrNotFound is returned by writes that matched no row
	ErrNotFound = errors.New("record not found")
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock's pool
// satisfies it as well, which is what the tests run against.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
