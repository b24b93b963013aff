package photos

import (
	"context"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

type Store interface {
	Create(ctx context.Context, p *Photo) error
	ListByPlace(ctx context.Context, placeID int64, limit int) ([]Photo, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

// Create registers a photo. When a review is given it must belong to the
// same place.
func (r *Repository) Create(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO photos (user_id, place_id, review_id, photo_url, caption)
		SELECT $1, $2, $3, $4, $5
		WHERE $3::bigint IS NULL
		   OR EXISTS (SELECT 1 FROM reviews WHERE id = $3 AND place_id = $2)
		RETURNING id, moderation_status, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, p.UserID, p.PlaceID, p.ReviewID, p.PhotoURL, p.Caption).
		Scan(&p.ID, &p.ModerationStatus, &p.CreatedAt)
	if err != nil {
		if p.ReviewID != nil {
			return dbx.Translate("create photo", "review", err)
		}
		return dbx.Translate("create photo", "place", err)
	}
	return nil
}

// ListByPlace returns up to limit approved photos of a place, newest first.
func (r *Repository) ListByPlace(ctx context.Context, placeID int64, limit int) ([]Photo, error) {
	query := `
		SELECT ph.id, ph.user_id, ph.place_id, ph.review_id, ph.photo_url, ph.caption,
		       ph.moderation_status, ph.created_at, u.username
		FROM photos ph
		JOIN users u ON u.id = ph.user_id
		WHERE ph.place_id = $1 AND ph.moderation_status = 'approved'
		ORDER BY ph.created_at DESC, ph.id DESC
		LIMIT $2
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, placeID, limit)
	if err != nil {
		return nil, errs.Infra("list place photos", err)
	}
	defer rows.Close()

	out := []Photo{}
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.PlaceID, &p.ReviewID, &p.PhotoURL, &p.Caption,
			&p.ModerationStatus, &p.CreatedAt, &p.Username); err != nil {
			return nil, errs.Infra("scan photo", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows photos", err)
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errs.Infra("delete photo", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("photo")
	}
	return nil
}
