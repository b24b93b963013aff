package storage

import (
	"context"
	"errors"

	"wayfarer/internal/domain/admins"
	"wayfarer/internal/domain/bookmarks"
	"wayfarer/internal/domain/catalog"
	"wayfarer/internal/domain/comments"
	"wayfarer/internal/domain/errs"
	"wayfarer/internal/domain/photos"
	"wayfarer/internal/domain/places"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoPool = errors.New("no database pool")

type Container struct {
	pool      *pgxpool.Pool
	Users     users.Store
	Places    places.Store
	Catalog   catalog.Store
	Reviews   reviews.Store
	Bookmarks bookmarks.Store
	Comments  comments.Store
	Photos    photos.Store
	Admins    admins.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:      db,
		Users:     users.NewRepository(db),
		Places:    places.NewRepository(db),
		Catalog:   catalog.NewRepository(db),
		Reviews:   reviews.NewRepository(db),
		Bookmarks: bookmarks.NewRepository(db),
		Comments:  comments.NewRepository(db),
		Photos:    photos.NewRepository(db),
		Admins:    admins.NewRepository(db),
	}
}

// ReviewTx is a temporary, tx-scoped set of repos for a review mutation.
type ReviewTx struct {
	Reviews reviews.Store
	Admins  admins.Store
}

// WithReviewTx runs a review mutation for placeID atomically with the
// recomputation of that place's cached rating. The place row stays locked
// until commit, so mutations on one place never interleave. If fn or the
// recomputation fails nothing is written.
func (c *Container) WithReviewTx(ctx context.Context, placeID int64, fn func(s *ReviewTx) error) error {
	if c.pool == nil {
		return errs.Infra("begin review transaction", errNoPool)
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errs.Infra("begin review transaction", err)
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	if err := places.LockForUpdate(ctx, tx, placeID); err != nil {
		return err
	}

	s := &ReviewTx{
		Reviews: reviews.NewRepository(tx),
		Admins:  admins.NewRepository(tx),
	}

	if err := fn(s); err != nil {
		return err
	}

	if err := places.RecomputeRating(ctx, tx, placeID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Infra("commit review transaction", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return errs.Infra("ping database", errNoPool)
	}
	return c.pool.Ping(ctx)
}
