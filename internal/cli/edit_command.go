package cli

import (
	"context"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"

	"github.com/spf13/pflag"
)

type editOptions struct {
	flags       *pflag.FlagSet
	description string
	start       string
	end         string
}

// EditCommand changes the description or times of a recorded entry
type EditCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *editOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts *editOptions) *EditCommand {
	return &EditCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		opts:         opts,
	}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tempo edit <id> [--description text] [--start HH:MM] [--end HH:MM]")
	}
	id := args[0]

	description := changedString(c.opts.flags, "description", c.opts.description)
	start := changedString(c.opts.flags, "start", c.opts.start)
	end := changedString(c.opts.flags, "end", c.opts.end)
	if description == nil && start == nil && end == nil {
		return errors.NewInvalidInputError("edit", id, "nothing to change; pass --description, --start or --end")
	}

	if description != nil {
		if err := c.businessAPI.UpdateEntryDescription(ctx, id, *description); err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
	}
	if start != nil || end != nil {
		if err := c.updateTimes(ctx, id, start, end); err != nil {
			return err
		}
	}

	c.app.printf("Updated %s\n", id)
	return nil
}

// updateTimes resolves HH:MM values against the entry's own day
func (c *EditCommand) updateTimes(ctx context.Context, id string, start, end *string) error {
	state, err := c.businessAPI.GetState(ctx)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}

	currentStart, currentEnd, ok := findEntryTimes(state, id)
	if !ok {
		return c.errorHandler.Handle("edit entry", errors.NewNotFoundError("entry", id))
	}

	newStart := currentStart
	if start != nil {
		if newStart, err = parseMoment("start", *start, currentStart, c.app.location); err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
	}

	var newEnd *time.Time
	if end != nil {
		base := currentStart
		if currentEnd != nil {
			base = *currentEnd
		}
		parsed, err := parseMoment("end", *end, base, c.app.location)
		if err != nil {
			return c.errorHandler.Handle("edit entry", err)
		}
		newEnd = &parsed
	}

	if err := c.businessAPI.UpdateEntryTime(ctx, id, newStart, newEnd); err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}
	return nil
}

// findEntryTimes looks the id up in history and in the running slot
func findEntryTimes(state domain.AppState, id string) (time.Time, *time.Time, bool) {
	if i, ok := state.FindEntry(id); ok {
		entry := state.Entries[i]
		return entry.StartTime, entry.EndTime, true
	}
	if state.Active != nil && state.Active.ID == id && state.Active.StartTime != nil {
		return *state.Active.StartTime, nil, true
	}
	return time.Time{}, nil, false
}
