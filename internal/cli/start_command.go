package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "start", "usage: tempo start (set a description with tempo draft)")
	}

	active, err := c.businessAPI.StartTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	description := active.Description
	if description == "" {
		description = "No description"
	}
	c.app.printf("Started tracking at %s: %s\n", c.app.clock(*active.StartTime), description)
	return nil
}
