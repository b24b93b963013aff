package users

import (
	"testing"

	"wayfarer/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	u, err := NewUser(" janedoe ", " jane@example.com ", "s3cret-pass", nil, "France")
	require.NoError(t, err)

	assert.Equal(t, "janedoe", u.Username)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEmpty(t, u.Password.hash)
	assert.NotEqual(t, "s3cret-pass", string(u.Password.hash))

	assert.NoError(t, u.Password.Compare("s3cret-pass"))
	assert.ErrorIs(t, u.Password.Compare("wrong"), ErrInvalidCredential)
}

func TestDuplicateErrorsAreConflicts(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateEmail, errs.ErrConflict)
	assert.ErrorIs(t, ErrDuplicateUsername, errs.ErrConflict)
}
