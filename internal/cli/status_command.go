package cli

import (
	"context"
	"fmt"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
	"tempo-tracker/internal/tui"
)

// StatusCommand prints the timer slot, replacing the old "current" command
type StatusCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "status", "usage: tempo status")
	}

	status, err := c.businessAPI.GetStatus(ctx)
	if err != nil {
		return c.errorHandler.Handle("read status", err)
	}

	c.app.println(status.Title)
	if status.Active == nil {
		c.app.println("No timer is running")
		return nil
	}

	active := status.Active
	description := active.Description
	if description == "" {
		description = "No description"
	}
	project := tui.Swatch("") + " No Project"
	currency := c.app.preferredCurrency(ctx)
	if status.Project != nil {
		project = tui.Swatch(status.Project.Color) + " " + status.Project.Name
		currency = status.Project.CurrencyOr(currency)
	}
	billable := "non-billable"
	if active.Billable() {
		billable = "billable"
	}

	switch status.State {
	case domain.RunningTimer:
		c.app.printf("Running since %s (%s)\n", c.app.clock(*active.StartTime), format.Duration(status.Elapsed))
		billable = fmt.Sprintf("%s @ %s", billable, format.Rate(active.Rate(), currency))
	default:
		c.app.println("Draft, not started")
	}
	c.app.printf("  %s\n  %s\n  %s\n", description, project, billable)
	return nil
}
