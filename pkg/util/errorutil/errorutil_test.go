package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{name: "validation", err: NewValidationError("company is required", nil), check: IsValidation, status: http.StatusBadRequest},
		{name: "not found", err: NewNotFound("application", nil), check: IsNotFound, status: http.StatusNotFound},
		{name: "unauthorized", err: NewUnauthorized("session required"), check: IsUnauthorized, status: http.StatusUnauthorized},
		{name: "conflict", err: NewConflict("email already registered", nil), check: IsConflict, status: http.StatusConflict},
		{name: "consistency", err: NewInternalConsistency("negative", nil), check: IsInternalConsistency, status: http.StatusInternalServerError},
		{name: "storage", err: NewStorageFailure(errors.New("dial tcp")), check: IsStorageFailure, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("classifier did not match wrapped %v", wrapped)
			}
			if got := ToDomainError(wrapped).HTTPStatus; got != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, got)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	de := ToDomainError(NewNotFound("application", nil))
	if de.Message != "application not available" {
		t.Errorf("unexpected message %q", de.Message)
	}
	if de.Details == nil {
		t.Error("details should never be nil")
	}
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil error must stay nil")
	}
	cause := errors.New("boom")
	de := ToDomainError(cause)
	if de.Code != CodeInternal || !errors.Is(de, cause) {
		t.Errorf("unexpected conversion %+v", de)
	}
	if IsValidation(cause) {
		t.Error("plain errors must not classify")
	}
}

func TestCodeForStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          CodeValidation,
		http.StatusForbidden:           CodeUnauthorized,
		http.StatusNotFound:            CodeNotFound,
		http.StatusConflict:            CodeConflict,
		http.StatusServiceUnavailable:  CodeStorageUnavailable,
		http.StatusInternalServerError: CodeInternal,
	}
	for status, want := range cases {
		if got := CodeForStatus(status); got != want {
			t.Errorf("CodeForStatus(%d) = %s, want %s", status, got, want)
		}
	}
}
