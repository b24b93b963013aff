// Package catalog reads the reference data places are filed under.
package catalog

import (
	"context"
	"strings"
	"time"

	"wayfarer/internal/domain/errs"
	"wayfarer/internal/infra/dbx"
)

var QueryTimeoutDuration = time.Second * 5

type Category struct {
	ID          int64   `json:"id"`
	ParentID    *int64  `json:"parent_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
	PlaceCount  int     `json:"place_count"`
}

type City struct {
	ID            int64    `json:"id"`
	CountryID     int64    `json:"country_id"`
	CountryName   string   `json:"country_name"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	StateProvince *string  `json:"state_province"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Timezone      *string  `json:"timezone"`
	Population    *int64   `json:"population"`
}

type Store interface {
	Categories(ctx context.Context) ([]Category, error)
	Cities(ctx context.Context, country string) ([]City, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT c.id, c.parent_id, c.name, c.description, c.icon_url, COUNT(p.id)
		FROM categories c
		LEFT JOIN places p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errs.Infra("list categories", err)
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Description, &c.IconURL, &c.PlaceCount); err != nil {
			return nil, errs.Infra("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows categories", err)
	}
	return out, nil
}

// Cities lists cities by name. A non-empty country matches the country
// name case-insensitively.
func (r *Repository) Cities(ctx context.Context, country string) ([]City, error) {
	query := `
		SELECT ct.id, ct.country_id, co.name, ct.name, ct.slug, ct.state_province,
		       ct.latitude, ct.longitude, ct.timezone, ct.population
		FROM cities ct
		JOIN countries co ON co.id = ct.country_id
	`
	args := []any{}
	if c := strings.TrimSpace(country); c != "" {
		query += " WHERE LOWER(co.name) = LOWER($1)"
		args = append(args, c)
	}
	query += " ORDER BY ct.name ASC, ct.id ASC"

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Infra("list cities", err)
	}
	defer rows.Close()

	out := []City{}
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.CountryID, &c.CountryName, &c.Name, &c.Slug, &c.StateProvince,
			&c.Latitude, &c.Longitude, &c.Timezone, &c.Population); err != nil {
			return nil, errs.Infra("scan city", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Infra("rows cities", err)
	}
	return out, nil
}
