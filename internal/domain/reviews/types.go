package reviews

import (
	"fmt"
	"time"

	"wayfarer/internal/domain/errs"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrDuplicateReview   = fmt.Errorf("you have already reviewed this place: %w", errs.ErrConflict)
	QueryTimeoutDuration = time.Second * 5
)

// ValidStatus reports whether s is a known moderation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Review is one user's rating of one place. VisitDate is formatted as
// YYYY-MM-DD.
type Review struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	PlaceID          int64     `json:"place_id"`
	Rating           int       `json:"rating"` // 1-5
	Title            *string   `json:"title"`
	Content          string    `json:"content"`
	VisitDate        *string   `json:"visit_date"`
	ModerationStatus string    `json:"moderation_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined fields
	Username   string  `json:"username,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	PlaceName  string  `json:"place_name,omitempty"`
	PhotoCount int     `json:"photo_count"`
}

// ReviewUpdate holds the fields an author may change. Nil fields are left
// untouched.
type ReviewUpdate struct {
	Rating    *int
	Title     *string
	Content   *string
	VisitDate *string
}
