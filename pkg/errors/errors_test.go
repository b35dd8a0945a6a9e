package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("variant", "blue-tshirt-m")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "blue-tshirt-m")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("variant", "x"), ErrNotFound)
	assert.ErrorIs(t, AlreadyExists("user", "email", "a@b.com"), ErrAlreadyExists)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Unauthorized("no token"), ErrUnauthorized)
	assert.ErrorIs(t, OutOfStock("blue-tshirt-m"), ErrOutOfStock)
	assert.ErrorIs(t, Unserviceable("999999"), ErrUnserviceable)
}

func TestHTTPStatus_AppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NotFound("variant", "x"), http.StatusNotFound},
		{AlreadyExists("user", "email", "a@b.com"), http.StatusConflict},
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{OutOfStock("blue-tshirt-m"), http.StatusConflict},
		{Unserviceable("999999"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err))
	}
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("load cart: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))

	err = fmt.Errorf("place order: %w", ErrOutOfStock)
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("mystery")))
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "get order")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get order")
}
