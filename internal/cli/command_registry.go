package cli

import (
	"context"
	"sort"
	"strings"

	"tempo-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// commandOptions holds the flag values bound by the cobra tree
type commandOptions struct {
	edit     editOptions
	draft    draftOptions
	list     listOptions
	project  projectOptions
	export   exportOptions
	settings settingsOptions
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App, opts *commandOptions) *CommandRegistry {
	if opts == nil {
		opts = &commandOptions{}
	}
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("start", NewStartCommand(app))
	registry.Register("stop", NewStopCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("continue", NewContinueCommand(app))
	registry.Register("add", NewAddCommand(app))
	registry.Register("edit", NewEditCommand(app, &opts.edit))
	registry.Register("bill", NewBillCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("draft", NewDraftCommand(app, &opts.draft))
	registry.Register("list", NewListCommand(app, &opts.list))
	registry.Register("project add", NewProjectAddCommand(app))
	registry.Register("project edit", NewProjectEditCommand(app, &opts.project))
	registry.Register("project delete", NewProjectDeleteCommand(app))
	registry.Register("project list", NewProjectListCommand(app))
	registry.Register("select toggle", NewSelectToggleCommand(app))
	registry.Register("select group", NewSelectGroupCommand(app, &opts.list))
	registry.Register("select clear", NewSelectClearCommand(app))
	registry.Register("select show", NewSelectShowCommand(app))
	registry.Register("export", NewExportCommand(app, &opts.export))
	registry.Register("settings", NewSettingsCommand(app, &opts.settings))
	registry.Register("suggest", NewSuggestCommand(app))
	registry.Register("watch", NewWatchCommand(app))
	registry.Register("reset", NewResetCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names lists the registered command names in order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: tempo " + strings.Join(r.Names(), " | ")
}
