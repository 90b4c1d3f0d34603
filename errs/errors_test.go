package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_IsValidation(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("url", "must be a GitHub repository URL"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrAnalysisFailed)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "url", validationErr.Field)
	assert.Equal(t, "submit: url: must be a GitHub repository URL", err.Error())
}

func TestStatusError_Message(t *testing.T) {
	withMessage := &StatusError{Op: "summarize", StatusCode: 502, Message: "upstream down"}
	assert.Equal(t, "summarize: request failed with status code '502' - upstream down", withMessage.Error())

	bare := &StatusError{Op: "generate", StatusCode: 500}
	assert.Equal(t, "generate: request failed with status code '500'", bare.Error())

	wrapped := fmt.Errorf("%w: %w", ErrGenerationFailed, bare)
	assert.ErrorIs(t, wrapped, ErrGenerationFailed)

	var statusErr *StatusError
	assert.True(t, errors.As(wrapped, &statusErr))
	assert.Equal(t, 500, statusErr.StatusCode)
}
