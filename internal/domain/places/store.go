package places

import (
	"context"
	"fmt"
	"strings"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

type Store interface {
	Browse(ctx context.Context, c Criteria) (*Page, error)
	Search(ctx context.Context, c Criteria) (*Page, error)
	GetByID(ctx context.Context, id int64) (*Place, error)
	Create(ctx context.Context, place *Place) error
	Update(ctx context.Context, id int64, in PlaceUpdate) (*Place, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

// Browse lists places by name using the cached rating columns.
func (r *Repository) Browse(ctx context.Context, c Criteria) (*Page, error) {
	return r.page(ctx, "browse places", buildBrowseQuery(c), c)
}

// Search ranks places by their live average over approved reviews, best
// first. Both statements run on one snapshot so the total always matches
// the rows it describes.
func (r *Repository) Search(ctx context.Context, c Criteria) (*Page, error) {
	return r.page(ctx, "search places", buildSearchQuery(c), c)
}

func (r *Repository) page(ctx context.Context, op string, bq builtQuery, c Criteria) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	out := &Page{Places: []PlaceSummary{}, Pagination: c.Pagination}
	total := 0

	err := dbx.ReadTx(ctx, r.db, func(q dbx.Querier) error {
		rows, err := q.Query(ctx, bq.query, bq.args...)
		if err != nil {
			return errs.Infra(op, err)
		}
		defer rows.Close()

		for rows.Next() {
			var s PlaceSummary
			if err := rows.Scan(
				&s.ID,
				&s.Name,
				&s.Slug,
				&s.Description,
				&s.Address,
				&s.PhotoURL,
				&s.PriceLevel,
				&s.Latitude,
				&s.Longitude,
				&s.CategoryID,
				&s.CategoryName,
				&s.CityID,
				&s.CityName,
				&s.AverageRating,
				&s.ReviewCount,
				&total,
			); err != nil {
				return errs.Infra(op+": scan", err)
			}
			out.Places = append(out.Places, s)
		}
		if err := rows.Err(); err != nil {
			return errs.Infra(op+": rows", err)
		}

		// Past the last page there is no row to carry the window total.
		if len(out.Places) == 0 && c.Pagination.Offset > 0 {
			if err := q.QueryRow(ctx, bq.count, bq.countArgs...).Scan(&total); err != nil {
				return errs.Infra(op+": count", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Pagination.ComputeMeta(total)
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Place, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.city_id, ct.name, co.name,
		       p.name, p.slug, p.description, p.address, p.latitude, p.longitude,
		       p.website_url, p.phone_number, p.price_level, p.photo_url,
		       p.average_rating::float8, p.review_count, p.created_at, p.updated_at
		FROM places p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN cities ct ON ct.id = p.city_id
		LEFT JOIN countries co ON co.id = ct.country_id
		WHERE p.id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var p Place
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CategoryID, &p.CategoryName, &p.CityID, &p.CityName, &p.CountryName,
		&p.Name, &p.Slug, &p.Description, &p.Address, &p.Latitude, &p.Longitude,
		&p.WebsiteURL, &p.PhoneNumber, &p.PriceLevel, &p.PhotoURL,
		&p.AverageRating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dbx.Translate("get place", "place", err)
	}
	return &p, nil
}

// Create inserts a place. The rating columns start empty and are only ever
// written by RecomputeRating.
func (r *Repository) Create(ctx context.Context, place *Place) error {
	query := `
		INSERT INTO places (
			category_id, city_id, name, slug, description, address,
			latitude, longitude, website_url, phone_number, price_level, photo_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, review_count, created_at, updated_at
	`

	if place.Slug == "" {
		place.Slug = Slugify(place.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		place.CategoryID, place.CityID, place.Name, place.Slug, place.Description, place.Address,
		place.Latitude, place.Longitude, place.WebsiteURL, place.PhoneNumber, place.PriceLevel, place.PhotoURL,
	).Scan(&place.ID, &place.ReviewCount, &place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		return dbx.Translate("create place", "place", err)
	}
	return nil
}

// Update applies the non-nil fields of in and returns the stored place.
func (r *Repository) Update(ctx context.Context, id int64, in PlaceUpdate) (*Place, error) {
	sets := []string{}
	args := []any{}
	argCounter := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if in.CategoryID != nil {
		set("category_id", *in.CategoryID)
	}
	if in.CityID != nil {
		set("city_id", *in.CityID)
	}
	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.Slug != nil {
		set("slug", *in.Slug)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}
	if in.Address != nil {
		set("address", *in.Address)
	}
	if in.Latitude != nil {
		set("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		set("longitude", *in.Longitude)
	}
	if in.WebsiteURL != nil {
		set("website_url", *in.WebsiteURL)
	}
	if in.PhoneNumber != nil {
		set("phone_number", *in.PhoneNumber)
	}
	if in.PriceLevel != nil {
		set("price_level", *in.PriceLevel)
	}
	if in.PhotoURL != nil {
		set("photo_url", *in.PhotoURL)
	}

	if len(sets) == 0 {
		return nil, errs.Validation("no fields to update")
	}

	query := fmt.Sprintf("UPDATE places SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), argCounter)
	args = append(args, id)

	execCtx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	tag, err := r.db.Exec(execCtx, query, args...)
	cancel()
	if err != nil {
		return nil, dbx.Translate("update place", "place", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, errs.NotFound("place")
	}

	return r.GetByID(ctx, id)
}

// Delete removes a place together with its reviews, photos and bookmarks.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return errs.Infra("delete place", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("place")
	}
	return nil
}

// Slugify lower-cases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
