package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// ResetCommand deletes all stored data after confirmation
type ResetCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(app *App) *ResetCommand {
	return &ResetCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "reset", "usage: tempo reset")
	}
	if err := c.businessAPI.Reset(ctx); err != nil {
		return c.errorHandler.Handle("reset data", err)
	}
	c.app.println("All data has been reset")
	return nil
}
