package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/tui"
)

// WatchCommand opens the live timer view
type WatchCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	run          func(ctx context.Context, b api.BusinessAPI, app *App) error
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		run: func(ctx context.Context, b api.BusinessAPI, app *App) error {
			return tui.Run(ctx, b, app.in, app.out)
		},
	}
}

// Execute runs the watch command
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "watch", "usage: tempo watch")
	}
	if err := c.run(ctx, c.businessAPI, c.app); err != nil {
		return c.errorHandler.Handle("watch timer", err)
	}
	return nil
}
