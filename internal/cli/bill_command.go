package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// BillCommand flips the billable flag of an entry
type BillCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewBillCommand creates a new bill command handler
func NewBillCommand(app *App) *BillCommand {
	return &BillCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the bill command
func (c *BillCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "bill", "usage: tempo bill <entry-id>")
	}

	billable, err := c.businessAPI.ToggleEntryBillable(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle billable", err)
	}

	if billable {
		c.app.printf("%s is now billable\n", args[0])
	} else {
		c.app.printf("%s is now non-billable\n", args[0])
	}
	return nil
}
