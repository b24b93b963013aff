package reviews

import (
	"context"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
	"wayfarer/internal/params"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	Update(ctx context.Context, id, userID int64, in ReviewUpdate) (*Review, error)
	Delete(ctx context.Context, id, userID int64) error
	ListByPlace(ctx context.Context, placeID int64, p params.Pagination) ([]Review, int, error)
	ListByUser(ctx context.Context, userID int64) ([]Review, error)
	SetModerationStatus(ctx context.Context, id int64, status string) (*Review, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const reviewColumns = `id, user_id, place_id, rating, title, content, visit_date::text,
	moderation_status, created_at, updated_at`

func scanReview(row interface{ Scan(dest ...any) error }, rv *Review) error {
	return row.Scan(
		&rv.ID,
		&rv.UserID,
		&rv.PlaceID,
		&rv.Rating,
		&rv.Title,
		&rv.Content,
		&rv.VisitDate,
		&rv.ModerationStatus,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
}

// Create inserts the review. A second review by the same user for the same
// place is rejected by the reviews_user_place_key constraint.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (user_id, place_id, rating, title, content, visit_date, moderation_status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7)
		RETURNING ` + reviewColumns

	if review.ModerationStatus == "" {
		review.ModerationStatus = StatusApproved
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := scanReview(r.db.QueryRow(ctx, query,
		review.UserID, review.PlaceID, review.Rating, review.Title, review.Content,
		review.VisitDate, review.ModerationStatus,
	), review)
	if err != nil {
		if constraint, ok := dbx.IsUniqueViolation(err); ok && constraint == "reviews_user_place_key" {
			return ErrDuplicateReview
		}
		return dbx.Translate("create review", "place", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rv Review
	err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id), &rv)
	if err != nil {
		return nil, dbx.Translate("get review", "review", err)
	}
	return &rv, nil
}

// Update changes the review only when userID wrote it. A review that does
// not exist and one owned by someone else are both reported as not found.
func (r *Repository) Update(ctx context.Context, id, userID int64, in ReviewUpdate) (*Review, error) {
	query := `
		UPDATE reviews
		SET rating = COALESCE($1, rating),
		    title = COALESCE($2, title),
		    content = COALESCE($3, content),
		    visit_date = COALESCE($4::date, visit_date),
		    updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING ` + reviewColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rv Review
	err := scanReview(r.db.QueryRow(ctx, query, in.Rating, in.Title, in.Content, in.VisitDate, id, userID), &rv)
	if err != nil {
		return nil, dbx.Translate("update review", "review", err)
	}
	return &rv, nil
}

// Delete removes the review only when userID wrote it.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errs.Infra("delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("review")
	}
	return nil
}

// ListByPlace returns approved reviews for a place, newest first, with the
// author and the number of photos attached to each review.
func (r *Repository) ListByPlace(ctx context.Context, placeID int64, p params.Pagination) ([]Review, int, error) {
	query := `
		SELECT r.id, r.user_id, r.place_id, r.rating, r.title, r.content, r.visit_date::text,
		       r.moderation_status, r.created_at, r.updated_at,
		       u.username, u.full_name,
		       (SELECT COUNT(*) FROM photos ph WHERE ph.review_id = r.id) AS photo_count,
		       COUNT(*) OVER() AS total_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = $1 AND r.moderation_status = 'approved'
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	out := []Review{}
	total := 0

	err := dbx.ReadTx(ctx, r.db, func(q dbx.Querier) error {
		rows, err := q.Query(ctx, query, placeID, p.Limit, p.Offset)
		if err != nil {
			return errs.Infra("list place reviews", err)
		}
		defer rows.Close()

		for rows.Next() {
			var rv Review
			if err := rows.Scan(
				&rv.ID, &rv.UserID, &rv.PlaceID, &rv.Rating, &rv.Title, &rv.Content, &rv.VisitDate,
				&rv.ModerationStatus, &rv.CreatedAt, &rv.UpdatedAt,
				&rv.Username, &rv.FullName, &rv.PhotoCount, &total,
			); err != nil {
				return errs.Infra("scan place review", err)
			}
			out = append(out, rv)
		}
		if err := rows.Err(); err != nil {
			return errs.Infra("rows place reviews", err)
		}

		if len(out) == 0 && p.Offset > 0 {
			err := q.QueryRow(ctx,
				`SELECT COUNT(*) FROM reviews WHERE place_id = $1 AND moderation_status = 'approved'`, placeID,
			).Scan(&total)
			if err != nil {
				return errs.Infra("count place reviews", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// ListByUser returns every review the user wrote, whatever its status.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Review, error) {
	query := `
		SELECT r.id, r.user_id, r.place_id, r.rating, r.title, r.content, r.visit_date::text,
		       r.moderation_status, r.created_at, r.updated_at,
		       p.name,
		       (SELECT COUNT(*) FROM photos ph WHERE ph.review_id = r.id) AS photo_count
		FROM reviews r
		JOIN places p ON p.id = r.place_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, errs.Infra("list user reviews", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.PlaceID, &rv.Rating, &rv.Title, &rv.Content, &rv.VisitDate,
			&rv.ModerationStatus, &rv.CreatedAt, &rv.UpdatedAt,
			&rv.PlaceName, &rv.PhotoCount,
		); err != nil {
			return nil, errs.Infra("scan user review", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows user reviews", err)
	}
	return out, nil
}

func (r *Repository) SetModerationStatus(ctx context.Context, id int64, status string) (*Review, error) {
	if !ValidStatus(status) {
		return nil, errs.Validation("unknown moderation status %q", status)
	}

	query := `
		UPDATE reviews
		SET moderation_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + reviewColumns

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rv Review
	if err := scanReview(r.db.QueryRow(ctx, query, status, id), &rv); err != nil {
		return nil, dbx.Translate("set review status", "review", err)
	}
	return &rv, nil
}
