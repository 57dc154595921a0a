package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "stop", "usage: tempo stop")
	}

	entry, err := c.businessAPI.StopTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}
	if entry == nil {
		c.app.println("No timer is running")
		return nil
	}

	description := entry.Description
	if description == "" {
		description = "No description"
	}
	c.app.printf("Stopped after %s: %s\n", format.Duration(entry.Duration()), description)
	return nil
}
