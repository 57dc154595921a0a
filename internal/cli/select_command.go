package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
)

// SelectToggleCommand adds or removes one entry from the export selection
type SelectToggleCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewSelectToggleCommand creates a new select toggle handler
func NewSelectToggleCommand(app *App) *SelectToggleCommand {
	return &SelectToggleCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the select toggle command
func (c *SelectToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "select toggle", "usage: tempo select toggle <entry-id>...")
	}

	for _, id := range args {
		selected, err := c.businessAPI.ToggleSelection(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("toggle selection", err)
		}
		if selected {
			c.app.printf("Selected %s\n", id)
		} else {
			c.app.printf("Unselected %s\n", id)
		}
	}
	return nil
}

// SelectGroupCommand toggles every entry of one day group
type SelectGroupCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *listOptions
}

// NewSelectGroupCommand creates a new select group handler. The list
// filter flags narrow which entries of the day are toggled.
func NewSelectGroupCommand(app *App, opts *listOptions) *SelectGroupCommand {
	return &SelectGroupCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler, opts: opts}
}

// Execute runs the select group command
func (c *SelectGroupCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "select group", "usage: tempo select group <YYYY-MM-DD>")
	}

	filter, err := buildFilter(ctx, c.app, c.opts)
	if err != nil {
		return c.errorHandler.Handle("toggle group", err)
	}
	summary, err := c.businessAPI.ToggleGroupSelection(ctx, args[0], filter)
	if err != nil {
		return c.errorHandler.Handle("toggle group", err)
	}

	return printSelection(ctx, c.app, summary)
}

// SelectClearCommand empties the selection
type SelectClearCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewSelectClearCommand creates a new select clear handler
func NewSelectClearCommand(app *App) *SelectClearCommand {
	return &SelectClearCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the select clear command
func (c *SelectClearCommand) Execute(ctx context.Context, args []string) error {
	if err := c.businessAPI.ClearSelection(ctx); err != nil {
		return c.errorHandler.Handle("clear selection", err)
	}
	c.app.println("Selection cleared")
	return nil
}

// SelectShowCommand prints the selection and its rollup
type SelectShowCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewSelectShowCommand creates a new select show handler
func NewSelectShowCommand(app *App) *SelectShowCommand {
	return &SelectShowCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the select show command
func (c *SelectShowCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.businessAPI.GetSelection(ctx)
	if err != nil {
		return c.errorHandler.Handle("show selection", err)
	}
	return printSelection(ctx, c.app, summary)
}

func printSelection(ctx context.Context, app *App, summary *api.SelectionSummary) error {
	if len(summary.IDs) == 0 {
		app.println("Nothing selected")
		return nil
	}
	for _, id := range summary.IDs {
		app.printf("* %s\n", id)
	}
	currency := app.preferredCurrency(ctx)
	app.printf("%d selected  %s  %s\n", summary.Rollup.Count, format.Duration(summary.Rollup.Duration), format.Totals(summary.Rollup.Totals, currency))
	return nil
}
