package places

import (
	"context"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

// RecomputeRating re-aggregates the approved reviews of a place into its
// cached average_rating and review_count. A place with no approved reviews
// gets a NULL average and a zero count. Running it twice is harmless.
func RecomputeRating(ctx context.Context, q dbx.Querier, placeID int64) error {
	query := `
		UPDATE places p
		SET average_rating = agg.avg_rating,
		    review_count = agg.review_count
		FROM (
			SELECT AVG(rating) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE place_id = $1 AND moderation_status = 'approved'
		) AS agg
		WHERE p.id = $1
	`
	tag, err := q.Exec(ctx, query, placeID)
	if err != nil {
		return errs.Infra("recompute rating", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("place")
	}
	return nil
}

// LockForUpdate takes a row lock on the place so that review mutations for
// the same place run one after another.
func LockForUpdate(ctx context.Context, q dbx.Querier, placeID int64) error {
	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM places WHERE id = $1 FOR UPDATE`, placeID).Scan(&id)
	return dbx.Translate("lock place", "place", err)
}
