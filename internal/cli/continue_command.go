package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// ContinueCommand starts a new timer from a past entry
type ContinueCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewContinueCommand creates a new continue command handler
func NewContinueCommand(app *App) *ContinueCommand {
	return &ContinueCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the continue command
func (c *ContinueCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "continue", "usage: tempo continue <entry-id>")
	}

	active, err := c.businessAPI.ContinueEntry(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("continue entry", err)
	}

	description := active.Description
	if description == "" {
		description = "No description"
	}
	c.app.printf("Continuing at %s: %s\n", c.app.clock(*active.StartTime), description)
	return nil
}
