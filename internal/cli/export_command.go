package cli

import (
	"context"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/export"
)

type exportOptions struct {
	project   string
	selection bool
	format    string
	output    string
}

// ExportCommand writes a report file, replacing the old CSV-only output command
type ExportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	opts         *exportOptions
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App, opts *exportOptions) *ExportCommand {
	return &ExportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: app.errorHandler,
		opts:         opts,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.NewInvalidInputError("command", "export", "usage: tempo export [--project id | --selection] [--format pdf|csv|json] [--output path]")
	}
	if c.opts.project != "" && c.opts.selection {
		return errors.NewInvalidInputError("export", "scope", "--project and --selection cannot be combined")
	}

	req := api.ExportRequest{Scope: api.ExportAll, Output: c.opts.output}
	switch {
	case c.opts.project != "":
		req.Scope = api.ExportProject
		req.ProjectID = c.app.resolveProjectID(ctx, c.opts.project)
	case c.opts.selection:
		req.Scope = api.ExportSelection
	}
	if c.opts.format != "" {
		reportFormat, err := export.ParseFormat(c.opts.format)
		if err != nil {
			return c.errorHandler.Handle("export report", err)
		}
		req.Format = reportFormat
	}

	result, err := c.businessAPI.Export(ctx, req)
	if err != nil {
		return c.errorHandler.Handle("export report", err)
	}

	report := result.Report
	c.app.printf("Exported %d entries (%s) to %s\n", len(report.Rows), report.Name, result.Path)
	c.app.printf("Total %s, billable %s\n", report.TotalDuration, report.TotalBillable)
	return nil
}
