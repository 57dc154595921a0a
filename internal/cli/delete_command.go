package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tempo delete <entry-id>")
	}

	if err := c.businessAPI.DeleteEntry(ctx, args[0]); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}

	c.app.printf("Deleted entry %s\n", args[0])
	return nil
}
