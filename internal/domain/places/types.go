package places

import (
	"time"

	"wayfarer/internal/params"
)

var QueryTimeoutDuration = time.Second * 5

// Place is a reviewable location. AverageRating is nil while the place has
// no approved reviews.
type Place struct {
	ID            int64     `json:"id"`
	CategoryID    *int64    `json:"category_id"`
	CategoryName  *string   `json:"category_name"`
	CityID        *int64    `json:"city_id"`
	CityName      *string   `json:"city_name"`
	CountryName   *string   `json:"country_name"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	WebsiteURL    *string   `json:"website_url"`
	PhoneNumber   *string   `json:"phone_number"`
	PriceLevel    *int16    `json:"price_level"`
	PhotoURL      *string   `json:"photo_url"`
	AverageRating *float64  `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PlaceSummary is one row of a browse or search result.
type PlaceSummary struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   *string  `json:"description"`
	Address       *string  `json:"address"`
	PhotoURL      *string  `json:"photo_url"`
	PriceLevel    *int16   `json:"price_level"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	CategoryID    *int64   `json:"category_id"`
	CategoryName  *string  `json:"category_name"`
	CityID        *int64   `json:"city_id"`
	CityName      *string  `json:"city_name"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}

// Criteria filters a browse or search. Nil filters are not applied.
type Criteria struct {
	CategoryID *int64
	CityID     *int64
	MinRating  *float64
	Query      string
	Pagination params.Pagination
}

// Page is one page of places plus the pagination metadata for the whole
// filtered set.
type Page struct {
	Places     []PlaceSummary    `json:"places"`
	Pagination params.Pagination `json:"pagination"`
}

// PlaceUpdate holds the editable fields of a place. Nil fields are left
// untouched.
type PlaceUpdate struct {
	CategoryID  *int64
	CityID      *int64
	Name        *string
	Slug        *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	WebsiteURL  *string
	PhoneNumber *string
	PriceLevel  *int16
	PhotoURL    *string
}
