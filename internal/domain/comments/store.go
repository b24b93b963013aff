package comments

import (
	"context"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, c *Comment) error
	ListByReview(ctx context.Context, reviewID int64) ([]Comment, error)
	ListByUser(ctx context.Context, userID int64) ([]Comment, error)
	Update(ctx context.Context, id, userID int64, content string) (*Comment, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (user_id, review_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, moderation_status, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, c.UserID, c.ReviewID, c.Content).
		Scan(&c.ID, &c.ModerationStatus, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return dbx.Translate("create comment", "review", err)
	}
	return nil
}

// ListByReview returns the approved comments on a review, oldest first.
func (r *Repository) ListByReview(ctx context.Context, reviewID int64) ([]Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.review_id, c.content, c.moderation_status, c.created_at, c.updated_at,
		       u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.review_id = $1 AND c.moderation_status = 'approved'
		ORDER BY c.created_at ASC, c.id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, reviewID)
	if err != nil {
		return nil, errs.Infra("list review comments", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.ReviewID, &c.Content, &c.ModerationStatus,
			&c.CreatedAt, &c.UpdatedAt, &c.Username); err != nil {
			return nil, errs.Infra("scan comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows comments", err)
	}
	return out, nil
}

// ListByUser returns the user's comments with the place each review is about.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.review_id, c.content, c.moderation_status, c.created_at, c.updated_at,
		       p.id, p.name
		FROM comments c
		JOIN reviews rv ON rv.id = c.review_id
		JOIN places p ON p.id = rv.place_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errs.Infra("list user comments", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.ReviewID, &c.Content, &c.ModerationStatus,
			&c.CreatedAt, &c.UpdatedAt, &c.PlaceID, &c.PlaceName); err != nil {
			return nil, errs.Infra("scan user comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows user comments", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id, userID int64, content string) (*Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, review_id, content, moderation_status, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var c Comment
	err := r.db.QueryRow(ctx, query, content, id, userID).Scan(
		&c.ID, &c.UserID, &c.ReviewID, &c.Content, &c.ModerationStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dbx.Translate("update comment", "comment", err)
	}
	return &c, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errs.Infra("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("comment")
	}
	return nil
}
