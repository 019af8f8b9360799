package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrNotFound_Error(t *testing.T) {
	err := &ErrNotFound{Entity: "template", ID: "12345"}
	assert.Equal(t, "template not found with ID: 12345", err.Error())
}

func TestErrSessionNotFound_Error(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", &ErrSessionNotFound{SessionID: "abc"})

	var notFound *ErrSessionNotFound
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "abc", notFound.SessionID)
	assert.Equal(t, "editor session not found: abc", notFound.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name is required")
	assert.Equal(t, "validation error: name is required", err.Error())

	var validationErr ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
