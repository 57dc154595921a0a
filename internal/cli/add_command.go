package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
)

// AddCommand records a completed entry between two times today
type AddCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "add", "usage: tempo add <HH:MM> <HH:MM>")
	}

	entry, err := c.businessAPI.AddManualEntry(ctx, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}

	c.app.printf("Added %s %s-%s (%s)\n", entry.ID, c.app.clock(entry.StartTime), c.app.clock(*entry.EndTime), format.Duration(entry.Duration()))
	return nil
}
