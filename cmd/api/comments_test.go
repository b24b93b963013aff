package main

import (
	"net/http"
	"testing"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/comments"
	"wayfarer/internal/domain/reviews"
	"wayfarer/internal/domain/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentOwnership(t *testing.T) {
	owner := newTestUser(t, 1, auth.RoleUser, "owner-password")
	other := newTestUser(t, 2, auth.RoleUser, "other-password")

	newApp := func() (*application, *fakeComments) {
		fc := newFakeComments(&comments.Comment{ID: 7, UserID: owner.ID, ReviewID: 3, Content: "Go early"})
		return newTestApplication(t, &storage.Container{Users: newFakeUsers(owner, other), Comments: fc}), fc
	}

	t.Run("non-owner update is not found", func(t *testing.T) {
		app, fc := newApp()
		req := newJSONRequest(t, http.MethodPut, "/api/comments/7", map[string]any{"content": "mine now"})
		req.Header.Set("Authorization", bearer(t, app, other))

		rr := executeRequest(app, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Go early", fc.byID[7].Content)
	})

	t.Run("non-owner delete is not found", func(t *testing.T) {
		app, fc := newApp()
		req := newJSONRequest(t, http.MethodDelete, "/api/comments/7", nil)
		req.Header.Set("Authorization", bearer(t, app, other))

		rr := executeRequest(app, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, fc.byID, int64(7))
	})

	t.Run("missing comment reads the same as someone else's", func(t *testing.T) {
		app, _ := newApp()
		req := newJSONRequest(t, http.MethodDelete, "/api/comments/99", nil)
		req.Header.Set("Authorization", bearer(t, app, other))

		assert.Equal(t, http.StatusNotFound, executeRequest(app, req).Code)
	})

	t.Run("owner update", func(t *testing.T) {
		app, fc := newApp()
		req := newJSONRequest(t, http.MethodPut, "/api/comments/7", map[string]any{"content": "Go at dawn"})
		req.Header.Set("Authorization", bearer(t, app, owner))

		rr := executeRequest(app, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "Go at dawn", fc.byID[7].Content)
	})

	t.Run("owner delete", func(t *testing.T) {
		app, fc := newApp()
		req := newJSONRequest(t, http.MethodDelete, "/api/comments/7", nil)
		req.Header.Set("Authorization", bearer(t, app, owner))

		rr := executeRequest(app, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.NotContains(t, fc.byID, int64(7))
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		app, _ := newApp()
		req := newJSONRequest(t, http.MethodPut, "/api/comments/7", map[string]any{"content": ""})
		req.Header.Set("Authorization", bearer(t, app, owner))

		assert.Equal(t, http.StatusBadRequest, executeRequest(app, req).Code)
	})

	t.Run("token required", func(t *testing.T) {
		app, _ := newApp()
		rr := executeRequest(app, newJSONRequest(t, http.MethodDelete, "/api/comments/7", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestReviewComments(t *testing.T) {
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	fc := newFakeComments()
	fr := newFakeReviews(&reviews.Review{ID: 3, PlaceID: 1, UserID: 2, Rating: 4, ModerationStatus: reviews.StatusApproved})
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u), Reviews: fr, Comments: fc})

	req := newJSONRequest(t, http.MethodPost, "/api/reviews/3/comments", map[string]any{"content": "Thanks for the tip"})
	req.Header.Set("Authorization", bearer(t, app, u))
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = executeRequest(app, newJSONRequest(t, http.MethodGet, "/api/reviews/3/comments", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	list := decodeBody(t, rr)["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Thanks for the tip", list[0].(map[string]any)["content"])

	rr = executeRequest(app, newJSONRequest(t, http.MethodGet, "/api/reviews/404/comments", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
