package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrong credentials", ErrWrongCredentials, http.StatusUnauthorized},
		{"missing credentials", ErrMissingCredentials, http.StatusBadRequest},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized},
		{"token creation", ErrTokenCreation, http.StatusInternalServerError},
		{"create failed", ErrCreateFailed, http.StatusInternalServerError},
		{"timeout", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := Status(tt.err)
			if status != tt.wantStatus {
				t.Errorf("Status(%v) = %d, want %d", tt.err, status, tt.wantStatus)
			}
		})
	}
}

func TestStatus_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrNotFound)

	status, _ := Status(wrapped)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped ErrNotFound, got %d", status)
	}
}

func TestStoreError_MasksDriverDetail(t *testing.T) {
	driverErr := errors.New("pq: relation \"users\" does not exist")
	err := NewStoreError("list users", driverErr)

	status, message := Status(err)
	if status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", status)
	}
	if message != "internal server error" {
		t.Errorf("driver detail leaked into message: %q", message)
	}
	if !errors.Is(err, driverErr) {
		t.Error("expected StoreError to unwrap to the driver error")
	}
}

func TestStoreError_TimeoutUnwraps(t *testing.T) {
	err := NewStoreError("update user", fmt.Errorf("exec: %w", context.DeadlineExceeded))

	status, _ := Status(err)
	if status != http.StatusRequestTimeout {
		t.Errorf("expected 408 for cancelled store operation, got %d", status)
	}
}
