package cli

import (
	"context"
	"io"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/config"
	"tempo-tracker/internal/logging"

	"github.com/spf13/cobra"
)

const defaultAppTimeout = 60 * time.Second

// Factory builds the business API for a loaded configuration. The returned
// close function releases the storage behind it.
type Factory func(cfg *config.Config, confirmer api.Confirmer) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory Factory
	in      io.Reader
	out     io.Writer

	config    *config.Config
	app       *App
	registry  *CommandRegistry
	opts      commandOptions
	confirmer api.Confirmer
	location  *time.Location
	closeFn   func() error

	configFile string
	yes        bool
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory Factory, in io.Reader, out io.Writer) *RootCommand {
	root := &RootCommand{
		factory:  factory,
		in:       in,
		out:      out,
		location: time.Local,
	}

	root.cmd = &cobra.Command{
		Use:   "tempo",
		Short: "A local-first time tracker",
		Long: `Tempo is a local-first time tracker. One timer at a time, a searchable
history grouped by day, projects with their own rates and currencies, and
PDF, CSV or JSON reports.

EXAMPLES:
  tempo draft --description "Client call" --project Internal
  tempo start                              # Start the timer (stops a running one first)
  tempo status                             # Show the running timer
  tempo stop                               # Stop and record the entry
  tempo add 09:00 10:30                    # Record a finished block from today
  tempo list --group --from 1w             # History of the last week, by day
  tempo select group 2025-03-10            # Select a whole day
  tempo export --selection --format csv    # Export the selection
  tempo watch                              # Live timer view

CONFIGURATION:
  Configuration follows this priority order: flags > environment > config file > defaults.
  The config file is config.yaml in the data directory, or the path in TEMPO_CONFIG.

    TEMPO_STORAGE_DIR                      Data directory (default: ~/.tempo)
    TEMPO_STORAGE_FILENAME                 Database filename (default: tempo.db)
    TEMPO_DEFAULTS_HOURLY_RATE             Rate for a fresh state (default: 50)
    TEMPO_DEFAULTS_CURRENCY                Currency for a fresh state (default: USD)
    TEMPO_APPLICATION_TIMEOUT              Command timeout (default: 60s)
    TEMPO_APPLICATION_ENV                  development, testing or production
    TEMPO_SUGGEST_API_KEY                  Gemini API key for tempo suggest
    TEMPO_EXPORT_DIR                       Report directory (default: .)
    TEMPO_EXPORT_FORMAT                    pdf, csv or json (default: pdf)
    TEMPO_DEBUG                            Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetArgs overrides the command line arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases storage afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	r.cmd.SetIn(r.in)
	r.cmd.SetOut(r.out)
	err := r.cmd.ExecuteContext(ctx)
	if r.closeFn != nil {
		if closeErr := r.closeFn(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.closeFn = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "Config file (overrides TEMPO_CONFIG)")
	flags.String("data-dir", "", "Data directory (overrides TEMPO_STORAGE_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TEMPO_STORAGE_FILENAME)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides TEMPO_APPLICATION_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug logging (overrides TEMPO_APPLICATION_VERBOSE)")
	flags.String("export-dir", "", "Report directory (overrides TEMPO_EXPORT_DIR)")
	flags.String("suggest-model", "", "Gemini model (overrides TEMPO_SUGGEST_MODEL)")
	flags.BoolVarP(&r.yes, "yes", "y", false, "Skip confirmation prompts")
}

// setup loads configuration and builds the API once flags are parsed
func (r *RootCommand) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if r.configFile != "" {
		loader.SetConfigFile(r.configFile)
	}
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	logging.SetVerbose(cfg.Application.Verbose)

	confirmer := r.confirmer
	switch {
	case r.yes:
		confirmer = api.AlwaysConfirm
	case confirmer == nil:
		confirmer = NewPromptConfirmer(r.in, r.out)
	}

	businessAPI, closeFn, err := r.factory(cfg, confirmer)
	if err != nil {
		return err
	}

	r.config = cfg
	r.closeFn = closeFn
	r.app = NewApp(businessAPI, cfg, r.in, r.out)
	r.app.location = r.location
	r.registry = NewCommandRegistry(r.app, &r.opts)
	return nil
}

// getAppTimeout returns the configured command timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return defaultAppTimeout
}

// run dispatches a cobra invocation to the registered handler under the
// application timeout
func (r *RootCommand) run(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(commandContext(cmd), r.getAppTimeout())
		defer cancel()
		return r.registry.Execute(ctx, name, args)
	}
}

// runInteractive dispatches without a deadline, for views that stay open
func (r *RootCommand) runInteractive(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.registry.Execute(commandContext(cmd), name, args)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the timer",
			Long:  "Start the timer from the current draft. A running timer is stopped and recorded first.",
			Args:  cobra.NoArgs,
			RunE:  r.run("start"),
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the running timer",
			Long:  "Stop the running timer and record it as a completed entry. Does nothing when no timer runs.",
			Args:  cobra.NoArgs,
			RunE:  r.run("stop"),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the timer",
			Args:  cobra.NoArgs,
			RunE:  r.run("status"),
		},
		&cobra.Command{
			Use:   "continue <entry-id>",
			Short: "Start a new timer from a past entry",
			Long:  "Start a new timer with the description, project and billable flag of a past entry.",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("continue"),
		},
		&cobra.Command{
			Use:   "add <HH:MM> <HH:MM>",
			Short: "Record a finished block of work from today",
			Long:  "Record a completed entry between two times today, using the current draft's description, project and billable flag.",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run("add"),
		},
		r.editCommand(),
		&cobra.Command{
			Use:   "bill <entry-id>",
			Short: "Toggle whether an entry is billable",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("bill"),
		},
		&cobra.Command{
			Use:   "delete <entry-id>",
			Short: "Delete an entry",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("delete"),
		},
		r.draftCommand(),
		r.listCommand(),
		r.projectCommand(),
		r.selectCommand(),
		r.exportCommand(),
		r.settingsCommand(),
		&cobra.Command{
			Use:   "suggest",
			Short: "Reword the draft description with the suggestion service",
			Args:  cobra.NoArgs,
			RunE:  r.run("suggest"),
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Open the live timer view",
			Args:  cobra.NoArgs,
			RunE:  r.runInteractive("watch"),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete all data",
			Long:  "Delete every entry, project and setting after confirmation. Use --yes to skip the prompt.",
			Args:  cobra.NoArgs,
			RunE:  r.run("reset"),
		},
	)
}

func (r *RootCommand) editCommand() *cobra.Command {
	opts := &r.opts.edit
	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Change an entry's description or times",
		Long: `Change an entry's description or times. Times are HH:MM on the entry's
own day, or a full "YYYY-MM-DD HH:MM". A running entry only takes --start.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("edit"),
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.description, "description", "d", "", "New description")
	flags.StringVar(&opts.start, "start", "", "New start time")
	flags.StringVar(&opts.end, "end", "", "New end time")
	opts.flags = flags
	return cmd
}

func (r *RootCommand) draftCommand() *cobra.Command {
	opts := &r.opts.draft
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Edit the draft timer",
		Long:  "Set the description, project or billable flag of the active timer slot, creating a draft when none exists.",
		Args:  cobra.NoArgs,
		RunE:  r.run("draft"),
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.description, "description", "d", "", "Description")
	flags.StringVarP(&opts.project, "project", "p", "", "Project id or name (empty clears)")
	flags.BoolVar(&opts.billable, "billable", true, "Billable flag")
	flags.BoolVar(&opts.toggleBillable, "toggle-billable", false, "Flip the billable flag")
	opts.flags = flags
	return cmd
}

func addFilterFlags(cmd *cobra.Command, opts *listOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.search, "search", "s", "", "Case-insensitive description search")
	flags.StringVarP(&opts.project, "project", "p", "", "Project id or name")
	flags.StringVar(&opts.from, "from", "", "First day (YYYY-MM-DD, today, or 1w)")
	flags.StringVar(&opts.to, "to", "", "Last day (YYYY-MM-DD, today, or 1w)")
}

func (r *RootCommand) listCommand() *cobra.Command {
	opts := &r.opts.list
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded entries",
		Long: `List recorded entries, newest first, with optional filters.

Examples:
  tempo list                               # Everything
  tempo list --search meeting              # Descriptions containing "meeting"
  tempo list --project Internal --from 1w  # One project, last week
  tempo list --group                       # Grouped by day with day totals`,
		Args: cobra.NoArgs,
		RunE: r.run("list"),
	}
	addFilterFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.group, "group", "g", false, "Group entries by day")
	return cmd
}

func (r *RootCommand) projectCommand() *cobra.Command {
	opts := &r.opts.project
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	edit := &cobra.Command{
		Use:   "edit <project>",
		Short: "Change a project's name, colour, client, rate or currency",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("project edit"),
	}
	flags := edit.Flags()
	flags.StringVar(&opts.name, "name", "", "New name")
	flags.StringVar(&opts.color, "color", "", "Colour as #RRGGBB")
	flags.StringVar(&opts.client, "client", "", "Client the project is billed to (empty clears it)")
	flags.Float64Var(&opts.rate, "rate", 0, "Hourly rate")
	flags.StringVar(&opts.currency, "currency", "", "Currency code, e.g. USD or IRT")
	opts.flags = flags

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a project",
			Args:  cobra.MinimumNArgs(1),
			RunE:  r.run("project add"),
		},
		edit,
		&cobra.Command{
			Use:   "delete <project>",
			Short: "Delete a project and all of its entries",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("project delete"),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List projects",
			Args:  cobra.NoArgs,
			RunE:  r.run("project list"),
		},
	)
	return cmd
}

func (r *RootCommand) selectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Manage the export selection",
	}

	group := &cobra.Command{
		Use:   "group <YYYY-MM-DD>",
		Short: "Select every entry of a day, or clear the day if all are selected",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("select group"),
	}
	addFilterFlags(group, &r.opts.list)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle <entry-id>...",
			Short: "Select or unselect entries",
			Args:  cobra.MinimumNArgs(1),
			RunE:  r.run("select toggle"),
		},
		group,
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the selection",
			Args:  cobra.NoArgs,
			RunE:  r.run("select clear"),
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the selection and its totals",
			Args:  cobra.NoArgs,
			RunE:  r.run("select show"),
		},
	)
	return cmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	opts := &r.opts.export
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report",
		Long: `Write a report of all history, one project, or the selection.

Examples:
  tempo export                             # All history as PDF
  tempo export --project Internal          # One project
  tempo export --selection --format csv    # The selection as CSV
  tempo export --format json -o out.json   # Explicit output file`,
		Args: cobra.NoArgs,
		RunE: r.run("export"),
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.project, "project", "p", "", "Only this project (id or name)")
	flags.BoolVar(&opts.selection, "selection", false, "Only the selected entries")
	flags.StringVarP(&opts.format, "format", "f", "", "pdf, csv or json (overrides TEMPO_EXPORT_FORMAT)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file or directory")
	return cmd
}

func (r *RootCommand) settingsCommand() *cobra.Command {
	opts := &r.opts.settings
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the default rate and currency",
		Args:  cobra.NoArgs,
		RunE:  r.run("settings"),
	}
	flags := cmd.Flags()
	flags.Float64Var(&opts.rate, "rate", 0, "Default hourly rate")
	flags.StringVar(&opts.currency, "currency", "", "Preferred currency code")
	opts.flags = flags
	return cmd
}
