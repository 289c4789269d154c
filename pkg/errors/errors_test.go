package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeDateConflict,
				Message: "That date is already booked for this state.",
			},
			expected: "DATE_CONFLICT: That date is already booked for this state.",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "Failed to save booking",
				Err:     errors.New("server selection timeout"),
			},
			expected: "INTERNAL_ERROR: Failed to save booking (caused by: server selection timeout)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should find the original error")
	}
}

func TestAppError_StatusCodeDefaultsTo500(t *testing.T) {
	err := &AppError{Code: CodeInternal}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want %d", err.StatusCode(), http.StatusInternalServerError)
	}
}

func TestConflictIsClientError(t *testing.T) {
	err := Conflict(CodeChurchConflict, "This church has already booked this state.")

	if err.Code != CodeChurchConflict {
		t.Errorf("expected code %s, got %s", CodeChurchConflict, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("Booking validation failed", map[string]any{"mobile": "mobile is required"})

	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Details["mobile"] != "mobile is required" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestInternal(t *testing.T) {
	originalErr := errors.New("database error")
	err := Internal("Failed to fetch bookings", originalErr)

	if err.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, err.Code)
	}
	if err.Err != originalErr {
		t.Errorf("expected wrapped error to be originalErr")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict(CodeDateConflict, "taken")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}
	if AsAppError(fmt.Errorf("handler: %w", appErr)) != appErr {
		t.Errorf("AsAppError() should see through fmt wrapping")
	}

	regularErr := errors.New("regular error")
	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestHasCode(t *testing.T) {
	err := Conflict(CodeDateConflict, "taken")
	if !HasCode(err, CodeDateConflict) {
		t.Errorf("HasCode() should match")
	}
	if HasCode(err, CodeChurchConflict) {
		t.Errorf("HasCode() should not match a different code")
	}
	if HasCode(errors.New("x"), CodeInternal) {
		t.Errorf("HasCode() should be false for non AppError")
	}
}
