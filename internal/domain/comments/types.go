package comments

import "time"

var QueryTimeoutDuration = time.Second * 5

type Comment struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	ReviewID         int64     `json:"review_id"`
	Content          string    `json:"content"`
	ModerationStatus string    `json:"moderation_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined fields
	Username  string `json:"username,omitempty"`
	PlaceID   int64  `json:"place_id,omitempty"`
	PlaceName string `json:"place_name,omitempty"`
}
