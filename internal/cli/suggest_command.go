package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
)

// SuggestCommand asks the suggestion service to reword the draft description
type SuggestCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewSuggestCommand creates a new suggest command handler
func NewSuggestCommand(app *App) *SuggestCommand {
	return &SuggestCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the suggest command
func (c *SuggestCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "suggest", "usage: tempo suggest")
	}

	suggestion, err := c.businessAPI.SuggestDescription(ctx)
	if err != nil {
		return c.errorHandler.Handle("suggest description", err)
	}
	if suggestion == nil {
		c.app.println("Description is too short for a suggestion")
		return nil
	}

	c.app.printf("Description: %s\n", suggestion.Description)
	if suggestion.Project != "" {
		c.app.printf("Suggested project: %s\n", suggestion.Project)
	}
	return nil
}
