package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"validation", Validation("invalid %s", "category"), ErrValidation, "invalid category"},
		{"not found", NotFound("place"), ErrNotFound, "place not found"},
		{"conflict", Conflict("place already bookmarked"), ErrConflict, "place already bookmarked"},
		{"infra", Infra("search places", cause), ErrInfrastructure, "the server encountered a problem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, Message(tt.err))

			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
		})
	}
}

func TestInfraKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Infra("recompute rating", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "recompute rating")
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Nil(t, Infra("noop", nil))
}
