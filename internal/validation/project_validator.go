package validation

import (
	"tempo-tracker/internal/domain"
)

// ProjectValidator provides validation for project registry operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithValidator shares a configured Validator
func NewProjectValidatorWithValidator(v *Validator) *ProjectValidator {
	return &ProjectValidator{validator: v}
}

// ValidateProjectName rejects empty and whitespace-only names
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	validationError := NewValidationError()

	trimmed := pv.validator.TrimAndValidateString(name)
	if !pv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("project_name")
		return validationError
	}

	max := pv.validator.getProjectNameMaxLength()
	if !pv.validator.IsValidStringLength(trimmed, 1, max) {
		validationError.AddInvalidLengthError("project_name", trimmed, max)
	}

	return validationError.OrNil()
}

// GetValidProjectName returns the trimmed name after validation
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	if err := pv.ValidateProjectName(name); err != nil {
		return "", err
	}
	return pv.validator.TrimAndValidateString(name), nil
}

// ValidateProjectID validates a project id
func (pv *ProjectValidator) ValidateProjectID(id string) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("project_id")
		return validationError
	}
	return nil
}

// ValidateProjectUpdate validates each field a partial update carries
func (pv *ProjectValidator) ValidateProjectUpdate(id string, update domain.ProjectUpdate) error {
	validationError := NewValidationError()

	if !pv.validator.IsValidID(id) {
		validationError.AddRequiredError("project_id")
	}
	if update.IsEmpty() {
		validationError.AddRequiredError("update")
	}
	if update.Name != nil {
		if err := pv.ValidateProjectName(*update.Name); err != nil {
			if ve, ok := AsValidationError(err); ok {
				validationError.Errors = append(validationError.Errors, ve.Errors...)
			}
		}
	}
	if update.ClientName != nil {
		max := pv.validator.getProjectNameMaxLength()
		if client := pv.validator.TrimAndValidateString(*update.ClientName); !pv.validator.IsValidStringLength(client, 0, max) {
			validationError.AddInvalidLengthError("client_name", client, max)
		}
	}
	if update.Color != nil && !pv.validator.IsValidHexColor(*update.Color) {
		validationError.AddInvalidFormatError("color", *update.Color, "#RRGGBB")
	}
	if update.HourlyRate != nil && !pv.validator.IsValidRate(*update.HourlyRate) {
		validationError.AddInvalidValueError("hourly_rate", *update.HourlyRate, "must be a non-negative number")
	}
	if update.Currency != nil && !pv.validator.IsValidCurrency(*update.Currency) {
		validationError.AddInvalidFormatError("currency", *update.Currency, "three letter code such as USD or IRT")
	}

	return validationError.OrNil()
}
