package validation

import (
	"time"
)

// TimeEntryValidator provides validation for entry mutations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

// NewTimeEntryValidatorWithValidator shares a configured Validator
func NewTimeEntryValidatorWithValidator(v *Validator) *TimeEntryValidator {
	return &TimeEntryValidator{validator: v}
}

// ValidateEntryID validates an entry id
func (tev *TimeEntryValidator) ValidateEntryID(id string) error {
	if !tev.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("entry_id")
		return validationError
	}
	return nil
}

// ValidateManualRange validates the two "HH:MM" strings of a manual entry.
// Equal or reversed times are allowed and mean the range crosses midnight.
func (tev *TimeEntryValidator) ValidateManualRange(from, to string) error {
	validationError := NewValidationError()

	if !tev.validator.IsNonEmptyString(from) {
		validationError.AddRequiredError("from")
	} else if !tev.validator.IsValidTimeOfDay(from) {
		validationError.AddInvalidFormatError("from", from, "HH:MM")
	}

	if !tev.validator.IsNonEmptyString(to) {
		validationError.AddRequiredError("to")
	} else if !tev.validator.IsValidTimeOfDay(to) {
		validationError.AddInvalidFormatError("to", to, "HH:MM")
	}

	return validationError.OrNil()
}

// ValidateTimeUpdate validates a replacement time window
func (tev *TimeEntryValidator) ValidateTimeUpdate(id string, start time.Time, end *time.Time) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(id) {
		validationError.AddRequiredError("entry_id")
	}
	if start.IsZero() {
		validationError.AddRequiredError("start_time")
	}
	if !start.IsZero() && !tev.validator.IsValidTimeRange(start, end) {
		validationError.AddInvalidRangeError("time_range", map[string]time.Time{
			"start": start,
			"end":   *end,
		}, "end time must be after start time")
	}

	return validationError.OrNil()
}

// ValidateDescription validates free-text descriptions. Empty is allowed.
func (tev *TimeEntryValidator) ValidateDescription(description string) error {
	max := tev.validator.getDescriptionMaxLength()
	if !tev.validator.IsValidStringLength(description, 0, max) {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError("description", description, max)
		return validationError
	}
	return nil
}
