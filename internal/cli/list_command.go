package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
	"tempo-tracker/internal/tui"
)

type listOptions struct {
	search  string
	project string
	from    string
	to      string
	group   bool
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *listOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts *listOptions) *ListCommand {
	return &ListCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		opts:         opts,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "list", "usage: tempo list [--search text] [--project id] [--from date] [--to date] [--group]")
	}

	filter, err := buildFilter(ctx, c.app, c.opts)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	state, err := c.businessAPI.GetState(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	selection, err := c.businessAPI.GetSelection(ctx)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	selected := domain.NewSelection(selection.IDs...)
	printer := entryPrinter{app: c.app, state: state, selected: selected}

	if c.opts.group {
		groups, err := c.businessAPI.GroupEntries(ctx, filter)
		if err != nil {
			return c.errorHandler.Handle("list entries", err)
		}
		if len(groups) == 0 {
			c.app.println("No entries found")
			return nil
		}
		for i, group := range groups {
			if i > 0 {
				c.app.println()
			}
			c.app.printf("%s  [%s]  %s\n", group.Label, group.Key, format.Duration(group.Total))
			for _, entry := range group.Entries {
				printer.print(entry)
			}
		}
	} else {
		entries, err := c.businessAPI.ListEntries(ctx, filter)
		if err != nil {
			return c.errorHandler.Handle("list entries", err)
		}
		if len(entries) == 0 {
			c.app.println("No entries found")
			return nil
		}
		for _, entry := range entries {
			printer.print(entry)
		}
	}

	rollup, err := c.businessAPI.Summarize(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	c.app.printf("\n%d entries  %s  %s\n", rollup.Count, format.Duration(rollup.Duration), format.Totals(rollup.Totals, state.PreferredCurrency))
	return nil
}

// buildFilter turns list flags into an entry filter
func buildFilter(ctx context.Context, app *App, opts *listOptions) (domain.EntryFilter, error) {
	now := timeNow()
	from, err := parseDay("from", opts.from, now, app.location)
	if err != nil {
		return domain.EntryFilter{}, err
	}
	to, err := parseDay("to", opts.to, now, app.location)
	if err != nil {
		return domain.EntryFilter{}, err
	}
	return domain.EntryFilter{
		SearchQuery: opts.search,
		ProjectID:   app.resolveProjectID(ctx, opts.project),
		StartDate:   from,
		EndDate:     to,
	}, nil
}

// entryPrinter renders one history line per entry
type entryPrinter struct {
	app      *App
	state    domain.AppState
	selected domain.Selection
}

func (p entryPrinter) print(entry domain.TimeEntry) {
	mark := " "
	if p.selected.Contains(entry.ID) {
		mark = "*"
	}

	project := tui.Swatch("") + " No Project"
	if proj, ok := p.state.Project(entry.ProjectID); ok {
		project = tui.Swatch(proj.Color) + " " + proj.Name
	}

	description := entry.Description
	if description == "" {
		description = "No description"
	}

	amount := "-"
	if entry.IsBillable {
		amount = format.Currency(entry.BilledAmount(), p.state.EffectiveCurrency(entry))
	}

	end := "running"
	if entry.EndTime != nil {
		end = p.app.clock(*entry.EndTime)
	}

	p.app.printf("%s %s  %s %s-%s  %s  %s  %s  %s\n",
		mark,
		entry.ID,
		format.DateKey(entry.StartTime.In(p.app.location)),
		p.app.clock(entry.StartTime),
		end,
		format.Duration(entry.Duration()),
		project,
		description,
		amount,
	)
}
