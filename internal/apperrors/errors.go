package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// The closed set of failure kinds the API can produce. Handlers map
// these to status codes through Status; anything outside the set is an
// internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrWrongCredentials   = errors.New("wrong credentials")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenCreation      = errors.New("token creation error")
	ErrCreateFailed       = errors.New("failed to create user")
)

// StoreError wraps an underlying database driver failure. The driver
// detail is logged by the caller and never leaks into a response body.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Status maps an error to the HTTP status code and client-facing
// message for it. Unrecognized errors become opaque 500s.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, ErrWrongCredentials):
		return http.StatusUnauthorized, "wrong credentials"
	case errors.Is(err, ErrMissingCredentials):
		return http.StatusBadRequest, "missing credentials"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, ErrTokenCreation):
		return http.StatusInternalServerError, "token creation error"
	case errors.Is(err, ErrCreateFailed):
		return http.StatusInternalServerError, "failed to create user"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "request took too long"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
