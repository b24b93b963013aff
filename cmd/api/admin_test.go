package main

import (
	"net/http"
	"testing"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireExactAdminRole(t *testing.T) {
	admin := newTestUser(t, 1, auth.RoleAdmin, "correct-horse")
	moderator := newTestUser(t, 2, auth.RoleModerator, "correct-horse")
	fu := newFakeUsers(admin, moderator)
	app := newTestApplication(t, &storage.Container{Users: fu, Places: &fakePlaces{}})

	req := newJSONRequest(t, http.MethodGet, "/api/admin/users?page=2&limit=5", nil)
	req.Header.Set("Authorization", bearer(t, app, moderator))
	assert.Equal(t, http.StatusForbidden, executeRequest(app, req).Code)

	req = newJSONRequest(t, http.MethodGet, "/api/admin/users?page=2&limit=5", nil)
	req.Header.Set("Authorization", bearer(t, app, admin))
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 2, fu.listed.Page)
	assert.Equal(t, 5, fu.listed.Limit)

	req = newJSONRequest(t, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, executeRequest(app, req).Code)
}

func TestCreatePlace(t *testing.T) {
	admin := newTestUser(t, 1, auth.RoleAdmin, "correct-horse")
	fp := &fakePlaces{}
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(admin), Places: fp})

	req := newJSONRequest(t, http.MethodPost, "/api/admin/places", map[string]any{
		"name":        "Blue Lagoon",
		"city_id":     4,
		"latitude":    63.88,
		"longitude":   -22.45,
		"price_level": 3,
	})
	req.Header.Set("Authorization", bearer(t, app, admin))
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "blue-lagoon", fp.place.Slug)
	assert.Nil(t, fp.place.AverageRating)

	for name, payload := range map[string]map[string]any{
		"missing name":  {"city_id": 4},
		"bad latitude":  {"name": "X", "latitude": 123.0},
		"bad slug":      {"name": "X", "slug": "Not A Slug"},
		"price too big": {"name": "X", "price_level": 9},
	} {
		req := newJSONRequest(t, http.MethodPost, "/api/admin/places", payload)
		req.Header.Set("Authorization", bearer(t, app, admin))
		assert.Equal(t, http.StatusBadRequest, executeRequest(app, req).Code, name)
	}
}
