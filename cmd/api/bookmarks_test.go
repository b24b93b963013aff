package main

import (
	"net/http"
	"testing"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/bookmarks"
	"wayfarer/internal/domain/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBookmark(t *testing.T) {
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	fb := &fakeBookmarks{}
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u), Bookmarks: fb})

	req := newJSONRequest(t, http.MethodPost, "/api/bookmarks/8", map[string]string{"collection_name": "Summer"})
	req.Header.Set("Authorization", bearer(t, app, u))
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NotNil(t, fb.added)
	assert.Equal(t, int64(8), fb.added.PlaceID)
	assert.Equal(t, u.ID, fb.added.UserID)

	// no body at all is fine
	req = newJSONRequest(t, http.MethodPost, "/api/bookmarks/9", nil)
	req.Header.Set("Authorization", bearer(t, app, u))
	assert.Equal(t, http.StatusCreated, executeRequest(app, req).Code)
}

func TestDuplicateBookmark(t *testing.T) {
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	fb := &fakeBookmarks{addErr: bookmarks.ErrDuplicateBookmark}
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u), Bookmarks: fb})

	req := newJSONRequest(t, http.MethodPost, "/api/bookmarks/8", nil)
	req.Header.Set("Authorization", bearer(t, app, u))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "duplicate_bookmark", body["error"])
	assert.Equal(t, false, body["success"])
}
