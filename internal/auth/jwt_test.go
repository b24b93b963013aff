package auth

import (
	"testing"
	"time"

	"wayfarer/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(now time.Time) *JWTAuthenticator {
	a := NewJWTAuthenticator("test-secret", "wayfarer", "wayfarer")
	a.now = func() time.Time { return now }
	return a
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(now)

	token, err := a.IssueToken(42, "jane@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.WithinDuration(t, now.Add(24*time.Hour), claims.ExpiresAt.Time, 0)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(now)

	token, err := a.IssueToken(7, "john@example.com", RoleUser)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestAuthenticator(now.Add(24*time.Hour + time.Second))
		_, err := later.VerifyToken(token)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTAuthenticator("another-secret", "wayfarer", "wayfarer")
		other.now = a.now
		_, err := other.VerifyToken(token)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTAuthenticator("test-secret", "wayfarer", "someone-else")
		other.now = a.now
		_, err := other.VerifyToken(token)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := a.VerifyToken(token + "x")
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestRequireRole(t *testing.T) {
	now := time.Now()
	a := newTestAuthenticator(now)

	userToken, err := a.IssueToken(1, "u@example.com", RoleUser)
	require.NoError(t, err)
	adminToken, err := a.IssueToken(2, "a@example.com", RoleAdmin)
	require.NoError(t, err)
	modToken, err := a.IssueToken(3, "m@example.com", RoleModerator)
	require.NoError(t, err)

	userClaims, err := a.VerifyToken(userToken)
	require.NoError(t, err)
	adminClaims, err := a.VerifyToken(adminToken)
	require.NoError(t, err)
	modClaims, err := a.VerifyToken(modToken)
	require.NoError(t, err)

	assert.NoError(t, RequireRole(adminClaims.Role, RoleAdmin))
	assert.ErrorIs(t, RequireRole(userClaims.Role, RoleAdmin), errs.ErrForbidden)
	// roles are flat: moderator does not pass an admin gate
	assert.ErrorIs(t, RequireRole(modClaims.Role, RoleAdmin), errs.ErrForbidden)
	assert.NoError(t, RequireRole(modClaims.Role, RoleAdmin, RoleModerator))
}
