package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesTemplate(t *testing.T) {
	err := Clone(ErrValidation, "field is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "field is required", err.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.EqualError(t, appErr.Unwrap(), "boom")
}

func TestFromErrorKeepsTyped(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", ErrRateLimited)
	assert.Same(t, ErrRateLimited, FromError(wrapped))
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrStepInvalid, map[string]string{"email": "InvalidFormat"})
	assert.Equal(t, map[string]string{"email": "InvalidFormat"}, err.Details)
	assert.Nil(t, ErrStepInvalid.Details)
}
