package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
		want string
	}{
		{"validation", Validation("Initial cost cannot be %s.", "negative"), ErrValidation, "Initial cost cannot be negative.", "validation"},
		{"not found", NotFound("Motorbike not found."), ErrNotFound, "Motorbike not found.", "not_found"},
		{"invalid state", InvalidState("Cannot add parts to %q as it is already sold.", "CB750"), ErrInvalidState, `Cannot add parts to "CB750" as it is already sold.`, "invalid_state"},
		{"conflict", Conflict("Email already in use."), ErrConflict, "Email already in use.", "conflict"},
		{"auth", Auth("Invalid email or password.", nil), ErrAuth, "Invalid email or password.", "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.want, KindName(tt.err))
		})
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Storage(fmt.Errorf("failed to insert part: %w", cause))

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage error: failed to insert part: database is locked", err.Error())
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("save: %w", NotFound("Part not found."))

	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKindNameUnclassified(t *testing.T) {
	assert.Equal(t, "ok", KindName(nil))
	assert.Equal(t, "internal", KindName(errors.New("boom")))
}
