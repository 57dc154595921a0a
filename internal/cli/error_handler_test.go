package cli

import (
	"errors"
	"fmt"
	"testing"

	apperrors "tempo-tracker/internal/errors"
	"tempo-tracker/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add project",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to add project: invalid input",
		},
		{
			name:      "Not found error",
			operation: "delete entry",
			err:       apperrors.NewNotFoundError("time entry", "e-1"),
			expected:  "failed to delete entry: time entry not found: e-1",
		},
		{
			name:      "Database error",
			operation: "stop timer",
			err:       apperrors.NewDatabaseError("insert", errors.New("timeout")),
			expected:  "failed to stop timer: A database error occurred. Please try again.",
		},
		{
			name:      "Conflict error",
			operation: "add entry",
			err:       apperrors.NewConflictError("e-7"),
			expected:  "failed to add entry: The time range overlaps entry e-7.",
		},
		{
			name:      "Conflict error without an id",
			operation: "add entry",
			err:       &apperrors.AppError{Type: apperrors.ErrorTypeConflict, Code: "TIME_CONFLICT", Message: "overlap"},
			expected:  "failed to add entry: The time range overlaps an existing entry.",
		},
		{
			name:      "Wrapped conflict error",
			operation: "edit entry",
			err:       fmt.Errorf("update: %w", apperrors.NewConflictError("e-3")),
			expected:  "failed to edit entry: The time range overlaps entry e-3.",
		},
		{
			name:      "Collaborator error",
			operation: "export report",
			err:       apperrors.NewCollaboratorError("pdf export", errors.New("disk full")),
			expected:  "failed to export report: pdf export failed. Nothing was changed.",
		},
		{
			name:      "Confirmation declined",
			operation: "reset data",
			err:       apperrors.NewConfirmationDeclinedError("reset"),
			expected:  "failed to reset data: reset cancelled",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_IsDatabaseError(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Database error",
			err:      apperrors.NewDatabaseError("insert", nil),
			expected: true,
		},
		{
			name:     "Validation error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.IsDatabaseError(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.IsDatabaseError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "App error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: "VALIDATION_FAILED",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "UNKNOWN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.GetErrorCode(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.GetErrorCode() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	// Create a mock validation error
	validationErr := &validation.ValidationError{
		Errors: []validation.FieldError{
			{Field: "test", Message: "test validation error"},
		},
	}
	
	result := eh.Handle("test operation", validationErr)
	expected := "failed to test operation: test validation error"
	
	if result.Error() != expected {
		t.Errorf("ErrorHandler.Handle() with validation error = %v, want %v", result.Error(), expected)
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	if result := eh.Handle("test operation", nil); result != nil {
		t.Errorf("ErrorHandler.Handle() with nil error = %v, want nil", result)
	}
}

func TestErrorHandler_IsConflictError(t *testing.T) {
	eh := NewErrorHandler()

	if !eh.IsConflictError(apperrors.NewConflictError("e-1")) {
		t.Errorf("ErrorHandler.IsConflictError() should match a conflict")
	}
	if eh.IsConflictError(apperrors.NewNotFoundError("time entry", "e-1")) {
		t.Errorf("ErrorHandler.IsConflictError() should not match a not found error")
	}
}

func TestErrorHandler_HandleWrappedValidationError(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("name")
	ve.AddInvalidValueError("rate", -1.0, "rate must be a non-negative number")

	result := eh.Handle("update settings", ve)
	want := "failed to update settings: " + ve.GetUserFriendlyMessage()
	if result.Error() != want {
		t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), want)
	}
}
