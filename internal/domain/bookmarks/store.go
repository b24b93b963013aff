package bookmarks

import (
	"context"
	"strings"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

type Store interface {
	Add(ctx context.Context, b *Bookmark) error
	Update(ctx context.Context, userID, placeID int64, notes, collection *string) (*Bookmark, error)
	Remove(ctx context.Context, userID, placeID int64) error
	ListByUser(ctx context.Context, userID int64, collection string) ([]Bookmark, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Add(ctx context.Context, b *Bookmark) error {
	query := `
		INSERT INTO bookmarks (user_id, place_id, notes, collection_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query, b.UserID, b.PlaceID, b.Notes, b.CollectionName).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if constraint, ok := dbx.IsUniqueViolation(err); ok && constraint == "bookmarks_user_place_key" {
			return ErrDuplicateBookmark
		}
		return dbx.Translate("add bookmark", "place", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, userID, placeID int64, notes, collection *string) (*Bookmark, error) {
	query := `
		UPDATE bookmarks
		SET notes = COALESCE($1, notes),
		    collection_name = COALESCE($2, collection_name)
		WHERE user_id = $3 AND place_id = $4
		RETURNING id, user_id, place_id, notes, collection_name, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var b Bookmark
	err := r.db.QueryRow(ctx, query, notes, collection, userID, placeID).Scan(
		&b.ID, &b.UserID, &b.PlaceID, &b.Notes, &b.CollectionName, &b.CreatedAt,
	)
	if err != nil {
		return nil, dbx.Translate("update bookmark", "bookmark", err)
	}
	return &b, nil
}

func (r *Repository) Remove(ctx context.Context, userID, placeID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND place_id = $2`, userID, placeID)
	if err != nil {
		return errs.Infra("remove bookmark", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("bookmark")
	}
	return nil
}

// ListByUser returns the user's bookmarks, newest first. A non-empty
// collection restricts the list to that collection.
func (r *Repository) ListByUser(ctx context.Context, userID int64, collection string) ([]Bookmark, error) {
	query := `
		SELECT b.id, b.user_id, b.place_id, b.notes, b.collection_name, b.created_at,
		       p.name, p.photo_url, ct.name, p.average_rating::float8
		FROM bookmarks b
		JOIN places p ON p.id = b.place_id
		LEFT JOIN cities ct ON ct.id = p.city_id
		WHERE b.user_id = $1
	`
	args := []any{userID}
	if c := strings.TrimSpace(collection); c != "" {
		query += " AND b.collection_name = $2"
		args = append(args, c)
	}
	query += " ORDER BY b.created_at DESC, b.id DESC"

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Infra("list bookmarks", err)
	}
	defer rows.Close()

	out := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.PlaceID, &b.Notes, &b.CollectionName, &b.CreatedAt,
			&b.PlaceName, &b.PhotoURL, &b.CityName, &b.AverageRating,
		); err != nil {
			return nil, errs.Infra("scan bookmark", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows bookmarks", err)
	}
	return out, nil
}
