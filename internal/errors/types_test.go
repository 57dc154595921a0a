package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeConflict, "conflict"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypeCollaborator, "collaborator"},
		{ErrorTypeConfirmation, "confirmation"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.errorType.String(); result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withCause := &AppError{Type: ErrorTypeDatabase, Message: "save failed", Cause: errors.New("locked")}
	if got := withCause.Error(); got != "database: save failed (caused by: locked)" {
		t.Errorf("AppError.Error() = %q", got)
	}

	plain := &AppError{Type: ErrorTypeConflict, Message: "overlap"}
	if got := plain.Error(); got != "conflict: overlap" {
		t.Errorf("AppError.Error() = %q", got)
	}
}

func TestAppError_Is(t *testing.T) {
	a := NewConflictError("one")
	b := NewConflictError("two")
	c := NewNotFoundError("entry", "one")

	if !errors.Is(a, b) {
		t.Errorf("conflict errors with the same code should match")
	}
	if errors.Is(a, c) {
		t.Errorf("errors of different types should not match")
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation}
	err.WithContext("field", "name").WithContext("length", 0)

	if v, ok := err.GetContext("field"); !ok || v != "name" {
		t.Errorf("WithContext should store field")
	}
	if v, ok := err.GetContext("length"); !ok || v != 0 {
		t.Errorf("WithContext should store length")
	}
	if _, ok := err.GetContext("missing"); ok {
		t.Errorf("GetContext should report missing keys")
	}
}

func TestAppError_GetContext_NilMap(t *testing.T) {
	err := &AppError{}
	if _, ok := err.GetContext("anything"); ok {
		t.Errorf("GetContext on nil map should return false")
	}
}
