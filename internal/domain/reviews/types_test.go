package reviews

import (
	"testing"

	"wayfarer/internal/domain/errs"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved, StatusRejected} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("APPROVED"))
	assert.False(t, ValidStatus("deleted"))
}

func TestDuplicateReviewIsConflict(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateReview, errs.ErrConflict)
}
