package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"spacebook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "start_date is required"}

	assert.Equal(t, "start_date is required", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("capacity must be at least 1")),
			code:    http.StatusBadRequest,
			message: "capacity must be at least 1",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("invalid date"),
			code:    http.StatusBadRequest,
			message: "invalid date",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "payment required",
			err:     failure.PaymentRequired("card declined"),
			code:    http.StatusPaymentRequired,
			message: "card declined",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			message: "connection reset",
		},
		{
			name:    "not found",
			err:     failure.NotFound("space not found"),
			code:    http.StatusNotFound,
			message: "space not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("email already registered"),
			code:    http.StatusConflict,
			message: "email already registered",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("access denied"),
			code:    http.StatusForbidden,
			message: "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestRangeUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.ErrRangeUnavailable)

	assert.ErrorIs(t, wrapped, failure.ErrRangeUnavailable)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
	assert.Equal(t, "space is not available for the selected dates", failure.ErrRangeUnavailable.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure", input: &failure.Failure{Code: http.StatusBadRequest}, expected: http.StatusBadRequest},
		{name: "wrapped failure", input: fmt.Errorf("outer: %w", failure.NotFound("x")), expected: http.StatusNotFound},
		{name: "unauthenticated", input: failure.ErrUnauthenticated, expected: http.StatusUnauthorized},
		{name: "plain error", input: errors.New("boom"), expected: http.StatusInternalServerError},
		{name: "nil", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.ErrRangeUnavailable))
	assert.True(t, failure.IsClientError(fmt.Errorf("wrapped: %w", failure.Conflict("email already registered"))))
	assert.False(t, failure.IsClientError(failure.InternalError(errors.New("db down"))))
	assert.False(t, failure.IsClientError(errors.New("boom")))
}
