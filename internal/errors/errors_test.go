package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("min_confidence_threshold", 1.5, "must be within [0, 1]")

	assert.Equal(t, "validation failed for field min_confidence_threshold: must be within [0, 1]", err.Error())
	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("reconcile: %w", err)
	assert.True(t, IsValidationError(wrapped))

	var ve *ValidationError
	assert.True(t, As(wrapped, &ve))
	assert.Equal(t, 1.5, ve.Value)
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidationError("", nil, "empty name")
	assert.Equal(t, "validation failed: empty name", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("algorithm", "fuzzy_soup")

	assert.Equal(t, `algorithm "fuzzy_soup" is not registered`, err.Error())
	// An unknown name in a config is a validation failure too
	assert.True(t, IsNotFound(err))
	assert.True(t, IsValidationError(err))
}
