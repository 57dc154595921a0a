package api

import (
	"context"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/export"
	"tempo-tracker/internal/services"
	"tempo-tracker/internal/suggest"
	"tempo-tracker/internal/validation"
)

// Confirmer gates destructive operations behind an explicit yes
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// NeverConfirm declines every prompt
var NeverConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })

// Suggester proposes a better wording for a description
type Suggester interface {
	Suggest(ctx context.Context, description string) (*suggest.Suggestion, error)
}

// Option configures a BusinessAPI
type Option func(*businessAPIImpl)

// WithClock replaces the wall clock
func WithClock(clock services.Clock) Option {
	return func(b *businessAPIImpl) { b.clock = clock }
}

// WithIDGenerator replaces the UUID source
func WithIDGenerator(ids services.IDGenerator) Option {
	return func(b *businessAPIImpl) { b.ids = ids }
}

// WithValidator uses a validator built from configuration
func WithValidator(v *validation.Validator) Option {
	return func(b *businessAPIImpl) { b.validator = v }
}

// WithLocation sets the zone used for calendar days and stored timestamps
func WithLocation(loc *time.Location) Option {
	return func(b *businessAPIImpl) { b.location = loc }
}

// WithDefaults sets the rate and currency a fresh state starts with
func WithDefaults(rate float64, currency domain.Currency) Option {
	return func(b *businessAPIImpl) {
		b.defaultRate = rate
		b.defaultCurrency = currency
	}
}

// WithConfirmer sets the gate for destructive operations
func WithConfirmer(c Confirmer) Option {
	return func(b *businessAPIImpl) { b.confirmer = c }
}

// WithSuggester sets the suggestion collaborator
func WithSuggester(s Suggester) Option {
	return func(b *businessAPIImpl) { b.suggester = s }
}

// WithExportDefaults sets where reports go and their default format
func WithExportDefaults(dir string, format export.Format) Option {
	return func(b *businessAPIImpl) {
		b.exportDir = dir
		b.exportFormat = format
	}
}

// WithRunningStatus sets the title shown for a running timer without a description
func WithRunningStatus(status string) Option {
	return func(b *businessAPIImpl) { b.runningStatus = status }
}
