package main

import (
	"net/http"
	"testing"

	"wayfarer/internal/auth"
	"wayfarer/internal/domain/storage"
	"wayfarer/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	active := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	inactive := newTestUser(t, 2, auth.RoleUser, "correct-horse")
	inactive.IsActive = false

	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(active, inactive)})

	t.Run("success returns a usable token", func(t *testing.T) {
		rr := executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "USER1@example.com", "password": "correct-horse"}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		data := decodeBody(t, rr)["data"].(map[string]any)
		token, _ := data["token"].(string)
		require.NotEmpty(t, token)
		assert.Equal(t, "user1", data["user"].(map[string]any)["username"])
		assert.NotContains(t, rr.Body.String(), "password")

		claims, err := app.authenticator.VerifyToken(token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, auth.RoleUser, claims.Role)
	})

	cases := map[string]map[string]string{
		"unknown email":  {"email": "nobody@example.com", "password": "correct-horse"},
		"wrong password": {"email": "user1@example.com", "password": "wrong-horse"},
		"inactive user":  {"email": "user2@example.com", "password": "correct-horse"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rr := executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/login", payload))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}

	t.Run("malformed payload", func(t *testing.T) {
		rr := executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/login", `{"email":`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "not-an-email", "password": "x"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRegister(t *testing.T) {
	fu := newFakeUsers()
	app := newTestApplication(t, &storage.Container{Users: fu})

	payload := map[string]any{
		"username": "wanderer",
		"email":    "wanderer@example.com",
		"password": "long-enough-pass",
		"country":  "Japan",
	}

	rr := executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/register", payload))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	data := decodeBody(t, rr)["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	fu.createErr = users.ErrDuplicateEmail
	rr = executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/register", payload))
	assert.Equal(t, http.StatusConflict, rr.Code)

	payload["password"] = "short"
	rr = executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/register", payload))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = executeRequest(app, newJSONRequest(t, http.MethodPost, "/api/auth/register",
		`{"username":"abc","email":"a@b.co","password":"long-enough-pass","role":"admin"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are rejected")
}

func TestAuthTokenMiddleware(t *testing.T) {
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u)})

	ghost := newTestUser(t, 99, auth.RoleUser, "correct-horse")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"unknown user", bearer(t, app, ghost)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodGet, "/api/users/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := executeRequest(app, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}

	req := newJSONRequest(t, http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", bearer(t, app, u))
	rr := executeRequest(app, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user1", decodeBody(t, rr)["data"].(map[string]any)["username"])
}

func TestRoleIsReadFromStoredUser(t *testing.T) {
	// token claims admin but the stored user has since been demoted
	u := newTestUser(t, 1, auth.RoleUser, "correct-horse")
	app := newTestApplication(t, &storage.Container{Users: newFakeUsers(u)})

	token, err := app.authenticator.IssueToken(u.ID, u.Email, auth.RoleAdmin)
	require.NoError(t, err)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := executeRequest(app, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
