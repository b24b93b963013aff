package photos

import "time"

var QueryTimeoutDuration = time.Second * 5

// Photo is an image registered by URL against a place and optionally one
// of its reviews.
type Photo struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	PlaceID          *int64    `json:"place_id"`
	ReviewID         *int64    `json:"review_id"`
	PhotoURL         string    `json:"photo_url"`
	Caption          *string   `json:"caption"`
	ModerationStatus string    `json:"moderation_status"`
	CreatedAt        time.Time `json:"created_at"`

	// Joined fields
	Username string `json:"username,omitempty"`
}
