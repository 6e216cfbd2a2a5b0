package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("loading post 7: %w", ErrPostNotFound)

	assert.True(t, errors.Is(wrapped, ErrResourceNotFound))
	assert.True(t, errors.Is(wrapped, ErrPostNotFound))
	assert.False(t, errors.Is(wrapped, ErrCommentNotFound))
	assert.Equal(t, "post not found", Message(wrapped, "fallback"))

	assert.True(t, errors.Is(ErrApplicationAlreadyExists, ErrConflict))
	assert.True(t, errors.Is(NewForbiddenError("nope"), ErrPermissionDenied))
	assert.True(t, errors.Is(ErrMissingIdentity, ErrUnauthorized))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(&CustomError{Err: ErrConflict}, "fallback"))
}
