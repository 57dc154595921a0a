package cli

import (
	"context"
	"strings"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
	"tempo-tracker/internal/tui"

	"github.com/spf13/pflag"
)

type projectOptions struct {
	flags    *pflag.FlagSet
	name     string
	color    string
	client   string
	rate     float64
	currency string
}

// ProjectAddCommand creates a project
type ProjectAddCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewProjectAddCommand creates a new project add handler
func NewProjectAddCommand(app *App) *ProjectAddCommand {
	return &ProjectAddCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the project add command
func (c *ProjectAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "project add", "usage: tempo project add <name>")
	}

	project, err := c.businessAPI.AddProject(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}

	c.app.printf("Added project %s %s (%s)\n", tui.Swatch(project.Color), project.Name, project.ID)
	return nil
}

// ProjectEditCommand applies a partial update to a project
type ProjectEditCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *projectOptions
}

// NewProjectEditCommand creates a new project edit handler
func NewProjectEditCommand(app *App, opts *projectOptions) *ProjectEditCommand {
	return &ProjectEditCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler, opts: opts}
}

// Execute runs the project edit command
func (c *ProjectEditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project edit", "usage: tempo project edit <id> [--name] [--color] [--client] [--rate] [--currency]")
	}

	update := domain.ProjectUpdate{
		Name:       changedString(c.opts.flags, "name", c.opts.name),
		Color:      changedString(c.opts.flags, "color", c.opts.color),
		ClientName: changedString(c.opts.flags, "client", c.opts.client),
		HourlyRate: changedFloat(c.opts.flags, "rate", c.opts.rate),
	}
	if code := changedString(c.opts.flags, "currency", c.opts.currency); code != nil {
		currency := domain.NormalizeCurrency(*code)
		update.Currency = &currency
	}
	if update.IsEmpty() {
		return errors.NewInvalidInputError("project edit", args[0], "nothing to change; pass --name, --color, --client, --rate or --currency")
	}

	project, err := c.businessAPI.UpdateProject(ctx, c.app.resolveProjectID(ctx, args[0]), update)
	if err != nil {
		return c.errorHandler.Handle("edit project", err)
	}

	c.app.printf("Updated project %s %s (%s)\n", tui.Swatch(project.Color), project.Name, project.ID)
	return nil
}

// ProjectDeleteCommand removes a project and every entry that references it
type ProjectDeleteCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewProjectDeleteCommand creates a new project delete handler
func NewProjectDeleteCommand(app *App) *ProjectDeleteCommand {
	return &ProjectDeleteCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the project delete command
func (c *ProjectDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project delete", "usage: tempo project delete <id>")
	}

	removed, err := c.businessAPI.DeleteProject(ctx, c.app.resolveProjectID(ctx, args[0]))
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}

	c.app.printf("Deleted project %s and %d entries\n", args[0], len(removed))
	return nil
}

// ProjectListCommand prints every project with its usage
type ProjectListCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewProjectListCommand creates a new project list handler
func NewProjectListCommand(app *App) *ProjectListCommand {
	return &ProjectListCommand{app: app, businessAPI: app.businessAPI, errorHandler: app.errorHandler}
}

// Execute runs the project list command
func (c *ProjectListCommand) Execute(ctx context.Context, args []string) error {
	state, err := c.businessAPI.GetState(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	summaries, err := c.businessAPI.ListProjects(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	if len(summaries) == 0 {
		c.app.println("No projects")
		return nil
	}

	for _, summary := range summaries {
		project := summary.Project
		rate := format.Rate(project.RateOr(state.DefaultHourlyRate), project.CurrencyOr(state.PreferredCurrency))
		c.app.printf("%s %s  %s  %s  %d entries  %s%s\n",
			tui.Swatch(project.Color),
			project.ID,
			project.Name,
			rate,
			summary.EntryCount,
			format.Duration(summary.Duration),
			clientSuffix(project.ClientName),
		)
	}
	return nil
}

func clientSuffix(client string) string {
	if client == "" {
		return ""
	}
	return "  client: " + client
}
