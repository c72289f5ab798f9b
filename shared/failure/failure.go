// Package failure carries an HTTP status alongside an error message so
// services can decide the response code and handlers only have to render it.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

var (
	ForbiddenError     = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ErrUnauthenticated = &Failure{Code: http.StatusUnauthorized, Message: "unauthorized"}

	// ErrRangeUnavailable means the requested days intersect a live booking of the space.
	ErrRangeUnavailable = &Failure{Code: http.StatusBadRequest, Message: "space is not available for the selected dates"}
)

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

// BadRequest returns nil for a nil err so it can wrap validation results directly.
func BadRequest(err error) error { return fromError(http.StatusBadRequest, err) }

func InternalError(err error) error { return fromError(http.StatusInternalServerError, err) }

func BadRequestFromString(msg string) error { return New(http.StatusBadRequest, msg) }

func Unauthorized(msg string) error { return New(http.StatusUnauthorized, msg) }

// PaymentRequired is returned when a checkout charge is declined.
func PaymentRequired(msg string) error { return New(http.StatusPaymentRequired, msg) }

func Forbidden(msg string) error { return New(http.StatusForbidden, msg) }

// NotFound takes the full message, e.g. "space not found".
func NotFound(msg string) error { return New(http.StatusNotFound, msg) }

func Conflict(msg string) error { return New(http.StatusConflict, msg) }

// GetCode unwraps err to a Failure; anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether err maps to a 4xx response.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
