package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tempo-tracker/internal/config"
	"tempo-tracker/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	timeOfDayRegex *regexp.Regexp
	hexColorRegex  *regexp.Regexp
	config         *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		timeOfDayRegex: regexp.MustCompile(`^(\d{1,2}):(\d{2})$`),
		hexColorRegex:  regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
		config:         cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

// IsValidTimeRange checks that end, when present, is strictly after start
func (v *Validator) IsValidTimeRange(start time.Time, end *time.Time) bool {
	if end == nil {
		return true
	}
	return end.After(start)
}

// ParseTimeOfDay parses a wall-clock "HH:MM" string
func (v *Validator) ParseTimeOfDay(s string) (hour, minute int, ok bool) {
	matches := v.timeOfDayRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(matches[1])
	if err != nil || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(matches[2])
	if err != nil || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// IsValidTimeOfDay checks the "HH:MM" format
func (v *Validator) IsValidTimeOfDay(s string) bool {
	_, _, ok := v.ParseTimeOfDay(s)
	return ok
}

// IsValidRate rejects NaN, infinities and negative rates
func (v *Validator) IsValidRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}

// IsValidCurrency checks for a three letter upper-case code
func (v *Validator) IsValidCurrency(c domain.Currency) bool {
	return c.IsValid()
}

// IsValidHexColor checks for a #RRGGBB colour
func (v *Validator) IsValidHexColor(color string) bool {
	return v.hexColorRegex.MatchString(color)
}

// IsValidID checks that an opaque id is present
func (v *Validator) IsValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) getProjectNameMaxLength() int {
	if v.config != nil && v.config.Validation.ProjectNameMaxLength > 0 {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 100
}

func (v *Validator) getDescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return 500
}
