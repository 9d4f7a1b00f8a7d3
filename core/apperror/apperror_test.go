package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatekit/gatekit/core/apperror"
)

func TestError_Interface(t *testing.T) {
	t.Parallel()

	err := apperror.New(apperror.KindNotFound, "session not found", http.StatusNotFound)
	assert.Equal(t, "session not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.True(t, err.Operational)

	var target apperror.Error
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, apperror.KindNotFound, target.Code)
}

func TestError_CopyModifiers(t *testing.T) {
	t.Parallel()

	base := apperror.ErrNotFound

	custom := base.WithMessage("user not found").WithDetails(map[string]any{"id": "u1"})
	assert.Equal(t, "user not found", custom.Message)
	assert.Equal(t, map[string]any{"id": "u1"}, custom.Details)

	// The predefined value must be untouched.
	assert.Equal(t, "Resource not found", base.Message)
	assert.Nil(t, base.Details)

	withCause := base.WithError(errors.New("row missing"))
	assert.Equal(t, "row missing", withCause.Details["cause"])
	assert.Nil(t, base.Details)
}

func TestError_Internal(t *testing.T) {
	t.Parallel()

	err := apperror.Internal("db connection dropped")
	assert.False(t, err.Operational)
	assert.Equal(t, apperror.KindInternalError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestPredefinedStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    apperror.Error
		status int
	}{
		{apperror.ErrUnauthorized, http.StatusUnauthorized},
		{apperror.ErrInvalidToken, http.StatusUnauthorized},
		{apperror.ErrTokenExpired, http.StatusUnauthorized},
		{apperror.ErrInsufficientPermissions, http.StatusForbidden},
		{apperror.ErrInvalidInput, http.StatusBadRequest},
		{apperror.ErrNotFound, http.StatusNotFound},
		{apperror.ErrAlreadyExists, http.StatusConflict},
		{apperror.ErrConflict, http.StatusConflict},
		{apperror.ErrRateLimitExceeded, http.StatusTooManyRequests},
		{apperror.ErrInternalError, http.StatusInternalServerError},
		{apperror.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{apperror.ErrBadRequest, http.StatusBadRequest},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.Status, "kind %s", tt.err.Code)
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := apperror.ValidationError{Fields: []apperror.FieldError{
		{Field: "email", Message: "must be a valid address"},
		{Field: "name", Message: "is required"},
	}}
	assert.Equal(t, "validation failed: email: must be a valid address; name: is required", err.Error())

	empty := apperror.ValidationError{}
	assert.Equal(t, "validation failed", empty.Error())
}

func TestProviderError_Message(t *testing.T) {
	t.Parallel()

	withMessage := apperror.ProviderError{ProviderCode: "auth/user-not-found", Message: "no such user"}
	assert.Equal(t, "no such user", withMessage.Error())

	codeOnly := apperror.ProviderError{ProviderCode: "auth/user-not-found"}
	assert.Equal(t, "auth/user-not-found", codeOnly.Error())
}
