package main

import (
	"net/http"
	"testing"
	"time"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/storage"

	"github.com/stretchr/testify/assert"
)

func TestCreateReviewRequiresToken(t *testing.T) {
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers()})

	rr := executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/places/1/reviews",
		map[string]any{"rating": 5, "content": "great"}))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateReviewValidation(t *testing.T) {
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u)})

	tomorrow := time.Now().AddDate(0, 0, 2).Format(time.DateOnly)

	tests := []struct {
		name    string
		target  string
		payload any
	}{
		{"rating too high", "/api/places/1/reviews", map[string]any{"rating": 6, "content": "x"}},
		{"rating missing", "/api/places/1/reviews", map[string]any{"content": "x"}},
		{"fractional rating", "/api/places/1/reviews", `{"rating": 4.5, "content": "x"}`},
		{"content missing", "/api/places/1/reviews", map[string]any{"rating": 3}},
		{"visit in the future", "/api/places/1/reviews", map[string]any{"rating": 3, "content": "x", "visit_date": tomorrow}},
		{"visit date malformed", "/api/places/1/reviews", map[string]any{"rating": 3, "content": "x", "visit_date": "03/01/2024"}},
		{"unknown field", "/api/places/1/reviews", map[string]any{"rating": 3, "content": "x", "user_id": 2}},
		{"bad place id", "/api/places/zero/reviews", map[string]any{"rating": 3, "content": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, tt.target, tt.payload)
			req.Header.Set("Authorization", bearer(t, app, u))
			rr := executeRequest(app, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestOnlyTheAuthorCanChangeAReview(t *testing.T) {
	author := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	other := newTestUser(t, 2, auth.RoleUser, "correct-horse")
	fr := newFakeReviews(&reviews.Review{ID: 10, UserID: author.ID, PlaceID: 3, Rating: 4, ModerationStatus: reviews.StatusApproved})
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(author, other), Reviews: fr})

	req := newJSONRequest(t, http.MethodPut, "/api/reviews/10", map[string]any{"rating": 1})
	req.Header.Set("Authorization", bearer(t, app, other))
	assert.Equal(t, http.StatusNotFound, executeRequest(app, req).Code)

	req = newJSONRequest(t, http.MethodDelete, "/api/reviews/10", nil)
	req.Header.Set("Authorization", bearer(t, app, other))
	assert.Equal(t, http.StatusNotFound, executeRequest(app, req).Code)

	req = newJSONRequest(t, http.MethodDelete, "/api/reviews/11", nil)
	req.Header.Set("Authorization", bearer(t, app, author))
	assert.Equal(t, http.StatusNotFound, executeRequest(app, req).Code)
}

func TestModerationRequiresModeratorOrAdmin(t *testing.T) {
	plain := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	moderator := newTestUser(t, 2, auth.RoleModerator, "correct-horse")
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(plain, moderator), Reviews: newFakeReviews()})

	req := newJSONRequest(t, http.MethodPut, "/api/admin/reviews/5/status", map[string]string{"status": "rejected"})
	req.Header.Set("Authorization", bearer(t, app, plain))
	assert.Equal(t, http.StatusForbidden, executeRequest(app, req).Code)

	// the gate lets moderators through, the review itself does not exist
	req = newJSONRequest(t, http.MethodPut, "/api/admin/reviews/5/status", map[string]string{"status": "rejected"})
	req.Header.Set("Authorization", bearer(t, app, moderator))
	assert.Equal(t, http.StatusNotFound, executeRequest(app, req).Code)

	req = newJSONRequest(t, http.MethodPut, "/api/admin/reviews/5/status", map[string]string{"status": "deleted"})
	req.Header.Set("Authorization", bearer(t, app, moderator))
	assert.Equal(t, http.StatusBadRequest, executeRequest(app, req).Code)
}
