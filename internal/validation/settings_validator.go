package validation

import (
	"tempo-tracker/internal/domain"
)

// SettingsValidator validates the application-wide defaults
type SettingsValidator struct {
	validator *Validator
}

// NewSettingsValidator creates a new settings validator
func NewSettingsValidator() *SettingsValidator {
	return &SettingsValidator{validator: NewValidator()}
}

// NewSettingsValidatorWithValidator shares a configured Validator
func NewSettingsValidatorWithValidator(v *Validator) *SettingsValidator {
	return &SettingsValidator{validator: v}
}

// ValidateSettings validates the fields being changed; nil means unchanged
func (sv *SettingsValidator) ValidateSettings(rate *float64, currency *domain.Currency) error {
	validationError := NewValidationError()

	if rate == nil && currency == nil {
		validationError.AddRequiredError("settings")
	}
	if rate != nil && !sv.validator.IsValidRate(*rate) {
		validationError.AddInvalidValueError("default_hourly_rate", *rate, "must be a non-negative number")
	}
	if currency != nil && !sv.validator.IsValidCurrency(*currency) {
		validationError.AddInvalidFormatError("preferred_currency", *currency, "three letter code such as USD or IRT")
	}

	return validationError.OrNil()
}
