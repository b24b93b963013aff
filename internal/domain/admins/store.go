package admins

import (
	"context"
	"time"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

var QueryTimeoutDuration = time.Second * 5

// Action is a counter on the admins row bumped when an admin acts on a
// review.
type Action string

const (
	ActionAdded     Action = "reviews_added"
	ActionEdited    Action = "reviews_edited"
	ActionDeleted   Action = "reviews_deleted"
	ActionModerated Action = "reviews_moderated"
)

type Store interface {
	// Record bumps the counter for action. Users without an admins row are
	// ignored and reported with false.
	Record(ctx context.Context, userID int64, action Action) (bool, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, userID int64, action Action) (bool, error) {
	var query string
	switch action {
	case ActionAdded:
		query = `UPDATE admins SET reviews_added = reviews_added + 1, updated_at = NOW() WHERE user_id = $1`
	case ActionEdited:
		query = `UPDATE admins SET reviews_edited = reviews_edited + 1, updated_at = NOW() WHERE user_id = $1`
	case ActionDeleted:
		query = `UPDATE admins SET reviews_deleted = reviews_deleted + 1, updated_at = NOW() WHERE user_id = $1`
	case ActionModerated:
		query = `UPDATE admins SET reviews_moderated = reviews_moderated + 1, updated_at = NOW() WHERE user_id = $1`
	default:
		return false, errs.Validation("unknown admin action %q", action)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return false, errs.Infra("record admin action", err)
	}
	return tag.RowsAffected() > 0, nil
}
