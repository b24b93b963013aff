package bookmarks

import (
	"fmt"
	"time"

	"wayfarer/internal/domain/errs"
)

var (
	ErrDuplicateBookmark = fmt.Errorf("place is already bookmarked: %w", errs.ErrConflict)
	QueryTimeoutDuration = time.Second * 5
)

type Bookmark struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	PlaceID        int64     `json:"place_id"`
	Notes          *string   `json:"notes"`
	CollectionName *string   `json:"collection_name"`
	CreatedAt      time.Time `json:"created_at"`

	// Joined fields
	PlaceName     string   `json:"place_name,omitempty"`
	PhotoURL      *string  `json:"photo_url,omitempty"`
	CityName      *string  `json:"city_name,omitempty"`
	AverageRating *float64 `json:"average_rating"`
}
