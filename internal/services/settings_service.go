package services

import (
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/validation"
)

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	settingsValidator *validation.SettingsValidator
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(validator *validation.Validator) SettingsService {
	return &settingsServiceImpl{
		settingsValidator: validation.NewSettingsValidatorWithValidator(validator),
	}
}

// UpdateSettings changes the default rate and preferred currency. Existing
// entries keep the rate they captured.
func (s *settingsServiceImpl) UpdateSettings(state domain.AppState, rate *float64, currency *domain.Currency) (domain.AppState, error) {
	if currency != nil {
		normalized := domain.NormalizeCurrency(string(*currency))
		currency = &normalized
	}
	if err := s.settingsValidator.ValidateSettings(rate, currency); err != nil {
		return state, err
	}

	next := state.Clone()
	if rate != nil {
		next.DefaultHourlyRate = *rate
	}
	if currency != nil {
		next.PreferredCurrency = *currency
	}
	return next, nil
}
