package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/services"

	"github.com/spf13/pflag"
)

type draftOptions struct {
	flags          *pflag.FlagSet
	description    string
	project        string
	billable       bool
	toggleBillable bool
}

// DraftCommand edits the active slot before or while it runs
type DraftCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *draftOptions
}

// NewDraftCommand creates a new draft command handler
func NewDraftCommand(app *App, opts *draftOptions) *DraftCommand {
	return &DraftCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		opts:         opts,
	}
}

// Execute runs the draft command
func (c *DraftCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "draft", "usage: tempo draft [--description text] [--project id] [--billable] [--toggle-billable]")
	}

	update := services.DraftUpdate{
		Description: changedString(c.opts.flags, "description", c.opts.description),
		ProjectID:   changedString(c.opts.flags, "project", c.app.resolveProjectID(ctx, c.opts.project)),
		IsBillable:  changedBool(c.opts.flags, "billable", c.opts.billable),
	}

	if c.opts.toggleBillable {
		if update.IsBillable != nil {
			return errors.NewInvalidInputError("draft", "billable", "--billable and --toggle-billable cannot be combined")
		}
		if _, err := c.businessAPI.ToggleDraftBillable(ctx); err != nil {
			return c.errorHandler.Handle("update draft", err)
		}
	}

	if !update.IsEmpty() {
		if _, err := c.businessAPI.UpdateDraft(ctx, update); err != nil {
			return c.errorHandler.Handle("update draft", err)
		}
	}

	return NewStatusCommand(c.app).Execute(ctx, nil)
}
