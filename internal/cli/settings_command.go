package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"

	"github.com/spf13/pflag"
)

type settingsOptions struct {
	flags    *pflag.FlagSet
	rate     float64
	currency string
}

// SettingsCommand shows or changes the default rate and preferred currency
type SettingsCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *settingsOptions
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App, opts *settingsOptions) *SettingsCommand {
	return &SettingsCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		opts:         opts,
	}
}

// Execute runs the settings command. Without flags it only prints.
func (c *SettingsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "settings", "usage: tempo settings [--rate n] [--currency code]")
	}

	rate := changedFloat(c.opts.flags, "rate", c.opts.rate)
	var currency *domain.Currency
	if code := changedString(c.opts.flags, "currency", c.opts.currency); code != nil {
		normalized := domain.NormalizeCurrency(*code)
		currency = &normalized
	}

	if rate != nil || currency != nil {
		if err := c.businessAPI.UpdateSettings(ctx, rate, currency); err != nil {
			return c.errorHandler.Handle("update settings", err)
		}
	}

	state, err := c.businessAPI.GetState(ctx)
	if err != nil {
		return c.errorHandler.Handle("read settings", err)
	}
	c.app.printf("Default rate: %s\n", format.Rate(state.DefaultHourlyRate, state.PreferredCurrency))
	c.app.printf("Currency: %s\n", state.PreferredCurrency)

	saved, err := c.businessAPI.LastSaved(ctx)
	if err != nil {
		return c.errorHandler.Handle("read settings", err)
	}
	if saved != nil {
		c.app.printf("Last saved: %s %s\n", format.DateLabel(saved.In(c.app.location)), c.app.clock(*saved))
	}
	return nil
}
