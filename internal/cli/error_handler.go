package cli

import (
	"fmt"

	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/logging"
	"tempo-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case eh.IsDatabaseError(err):
		logging.Warnf("%s [%s]: %v", operation, eh.GetErrorCode(err), err)
	case errors.ShouldLogError(err):
		logging.Debugf("%s: %v", operation, err)
	}

	if validationErr, ok := validation.AsValidationError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if id, ok := eh.conflictingID(err); ok {
		return fmt.Errorf("failed to %s: The time range overlaps entry %s.", operation, id)
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// conflictingID returns the id of the entry an overlap error points at
func (eh *ErrorHandler) conflictingID(err error) (string, bool) {
	if !eh.IsConflictError(err) {
		return "", false
	}
	appErr, _ := errors.AsAppError(err)
	value, ok := appErr.GetContext("conflicting_id")
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

// IsConflictError checks if an error reports an overlapping time range
func (eh *ErrorHandler) IsConflictError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConflict)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
