// Package dbx holds the small pgx abstractions shared by every repository:
// a Querier satisfied by both *pgxpool.Pool and pgx.Tx, and the translation
// of PostgreSQL error codes into domain error kinds.
package dbx

import (
	"context"
	"errors"

	"wayfarer/internal/domain/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is implemented by *pgxpool.Pool and pgx.Tx so repositories can run
// on the pool or inside a unit of work.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ReadTx runs fn inside a read-only REPEATABLE READ transaction so that
// several statements observe one snapshot. When q is already a transaction
// fn runs on it directly.
func ReadTx(ctx context.Context, q Querier, fn func(q Querier) error) error {
	b, ok := q.(txBeginner)
	if !ok {
		return fn(q)
	}

	tx, err := b.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return errs.Infra("begin read transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Infra("commit read transaction", err)
	}
	return nil
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint name.
func IsUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// Translate maps err from a pgx call made by op onto the domain error kinds.
// resource names what a missing row or a dangling foreign key refers to.
func Translate(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errs.Conflict(resource + " already exists")
		case codeForeignKeyViolation:
			return errs.NotFound("referenced " + resource)
		case codeCheckViolation:
			return errs.Validation("%s violates constraint %s", resource, pgErr.ConstraintName)
		}
	}
	return errs.Infra(op, err)
}
