package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/export"
	"tempo-tracker/internal/format"
	"tempo-tracker/internal/logging"
	"tempo-tracker/internal/repository/sqlite"
	"tempo-tracker/internal/services"
	"tempo-tracker/internal/suggest"
	"tempo-tracker/internal/validation"
)

// IdleTitle is the status title when no timer runs
const IdleTitle = "Tempo | Time Tracker"

// errUnchanged tells mutate that the reducer made no change worth saving
var errUnchanged = stderrors.New("unchanged")

// Status describes the active slot at a point in time
type Status struct {
	State   domain.TimerState   `json:"state"`
	Active  *domain.ActiveEntry `json:"active,omitempty"`
	Project *domain.Project     `json:"project,omitempty"`
	Elapsed time.Duration       `json:"elapsed"`
	Title   string              `json:"title"`
	At      time.Time           `json:"at"`
}

// ProjectSummary is a project together with its history footprint
type ProjectSummary struct {
	Project    domain.Project `json:"project"`
	EntryCount int            `json:"entry_count"`
	Duration   time.Duration  `json:"duration"`
}

// SelectionSummary is the current selection and its rollup
type SelectionSummary struct {
	IDs    []string        `json:"ids"`
	Rollup services.Rollup `json:"rollup"`
}

// ExportScope picks which entries go into a report
type ExportScope int

const (
	ExportAll ExportScope = iota
	ExportProject
	ExportSelection
)

// ExportRequest describes one export. Empty Format and Output fall back to
// the configured defaults.
type ExportRequest struct {
	Scope     ExportScope
	ProjectID string
	Format    export.Format
	Output    string
}

// ExportResult reports where a report was written
type ExportResult struct {
	Path   string        `json:"path"`
	Report export.Report `json:"report"`
}

// BusinessAPI is the single state container. Every mutation runs one
// reducer against the current state, saves the whole result, and only then
// makes it current.
type BusinessAPI interface {
	// ========== Timer Workflows ==========

	// StartTimer starts the draft, stopping a running timer first
	StartTimer(ctx context.Context) (*domain.ActiveEntry, error)

	// StopTimer completes the running timer; nil when nothing was running
	StopTimer(ctx context.Context) (*domain.TimeEntry, error)

	// ContinueEntry starts a new timer seeded from a past entry
	ContinueEntry(ctx context.Context, id string) (*domain.ActiveEntry, error)

	// AddManualEntry records a completed entry from two HH:MM times today
	AddManualEntry(ctx context.Context, from, to string) (*domain.TimeEntry, error)

	// ========== Entry Editing ==========

	UpdateEntryDescription(ctx context.Context, id, description string) error
	UpdateEntryTime(ctx context.Context, id string, start time.Time, end *time.Time) error
	ToggleEntryBillable(ctx context.Context, id string) (bool, error)
	DeleteEntry(ctx context.Context, id string) error

	// ========== Draft Editing ==========

	UpdateDraft(ctx context.Context, update services.DraftUpdate) (*domain.ActiveEntry, error)
	ToggleDraftBillable(ctx context.Context) (bool, error)

	// SuggestDescription asks the suggestion collaborator for a better
	// description and applies it to the draft. A nil result changes nothing.
	SuggestDescription(ctx context.Context) (*suggest.Suggestion, error)

	// ========== Projects ==========

	AddProject(ctx context.Context, name string) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error)

	// DeleteProject removes a project and its entries after confirmation and
	// returns the removed entry ids
	DeleteProject(ctx context.Context, id string) ([]string, error)
	ListProjects(ctx context.Context) ([]ProjectSummary, error)

	// ========== Settings ==========

	UpdateSettings(ctx context.Context, rate *float64, currency *domain.Currency) error

	// Reset wipes every stored document after confirmation
	Reset(ctx context.Context) error

	// ========== Query Operations ==========

	GetState(ctx context.Context) (domain.AppState, error)
	GetStatus(ctx context.Context) (*Status, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error)
	GroupEntries(ctx context.Context, filter domain.EntryFilter) ([]services.EntryGroup, error)
	Summarize(ctx context.Context, filter domain.EntryFilter) (services.Rollup, error)

	// Refresh drops the cached state and reads the stored one again
	Refresh(ctx context.Context) error

	// LastSaved reports when the state document was last written, or nil
	// when nothing has been stored yet
	LastSaved(ctx context.Context) (*time.Time, error)

	// ========== Selection ==========

	ToggleSelection(ctx context.Context, id string) (bool, error)
	ToggleGroupSelection(ctx context.Context, key string, filter domain.EntryFilter) (*SelectionSummary, error)
	ClearSelection(ctx context.Context) error
	GetSelection(ctx context.Context) (*SelectionSummary, error)

	// ========== Export ==========

	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	mu       sync.Mutex
	repo     sqlite.Repository
	mapper   *domain.Mapper
	services *services.ServiceContainer

	clock           services.Clock
	ids             services.IDGenerator
	validator       *validation.Validator
	location        *time.Location
	defaultRate     float64
	defaultCurrency domain.Currency
	runningStatus   string
	exportDir       string
	exportFormat    export.Format
	confirmer       Confirmer
	suggester       Suggester

	loaded    bool
	state     domain.AppState
	selection domain.Selection
}

// NewBusinessAPI creates a new BusinessAPI instance. State is read lazily on
// first use.
func NewBusinessAPI(repo sqlite.Repository, opts ...Option) BusinessAPI {
	b := &businessAPIImpl{
		repo:            repo,
		clock:           services.SystemClock,
		ids:             services.NewUUID,
		location:        time.Local,
		defaultRate:     50,
		defaultCurrency: domain.USD,
		runningStatus:   "Tracking",
		exportDir:       ".",
		exportFormat:    export.FormatPDF,
		confirmer:       NeverConfirm,
		selection:       domain.NewSelection(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.validator == nil {
		b.validator = validation.NewValidator()
	}

	b.mapper = domain.NewMapperIn(b.location)
	b.services = services.NewServiceContainer(b.clock, b.ids, b.validator)
	b.services.SearchService = services.NewSearchService(b.location)
	return b
}

// ========== State handling ==========

func (b *businessAPIImpl) defaultState() domain.AppState {
	return domain.DefaultState(b.defaultRate, b.defaultCurrency)
}

// load reads the stored documents once. mu must be held.
func (b *businessAPIImpl) load(ctx context.Context) error {
	if b.loaded {
		return nil
	}

	state, err := b.loadState(ctx)
	if err != nil {
		return err
	}
	selection, err := b.loadSelection(ctx)
	if err != nil {
		return err
	}

	b.state = state
	b.selection = selection
	b.loaded = true

	if removed := b.selection.Prune(state.Entries); len(removed) > 0 {
		logging.Debugf("dropped %d dangling selection ids on load", len(removed))
		if err := b.saveSelection(ctx); err != nil {
			logging.Warnf("saving pruned selection failed: %v", err)
		}
	}
	return nil
}

func (b *businessAPIImpl) loadState(ctx context.Context) (domain.AppState, error) {
	doc, err := b.repo.LoadState(ctx)
	switch {
	case err == nil:
		return b.mapper.StateFromDocument(*doc), nil
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		logging.Debugln("no stored state, starting from defaults")
		return b.defaultState(), nil
	case stderrors.Is(err, sqlite.ErrCorruptDocument):
		logging.Warnf("stored state is unreadable, starting from defaults: %v", err)
		return b.defaultState(), nil
	default:
		return domain.AppState{}, err
	}
}

func (b *businessAPIImpl) loadSelection(ctx context.Context) (domain.Selection, error) {
	doc, err := b.repo.LoadSelection(ctx)
	switch {
	case err == nil:
		return b.mapper.SelectionFromDocument(*doc), nil
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		return domain.NewSelection(), nil
	case stderrors.Is(err, sqlite.ErrCorruptDocument):
		logging.Warnf("stored selection is unreadable, clearing it: %v", err)
		return domain.NewSelection(), nil
	default:
		return domain.Selection{}, err
	}
}

func (b *businessAPIImpl) saveSelection(ctx context.Context) error {
	return b.repo.SaveSelection(ctx, b.mapper.SelectionToDocument(b.selection))
}

// mutate runs reducer against the current state and commits its result.
// A rejected reducer or a failed save leaves the current state untouched.
func (b *businessAPIImpl) mutate(ctx context.Context, reducer func(domain.AppState) (domain.AppState, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return err
	}

	next, err := reducer(b.state)
	if stderrors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	return b.commit(ctx, next)
}

// commit persists next and makes it current. mu must be held.
func (b *businessAPIImpl) commit(ctx context.Context, next domain.AppState) error {
	if err := b.repo.SaveState(ctx, b.mapper.StateToDocument(next)); err != nil {
		return err
	}
	b.state = next

	if removed := b.selection.Prune(next.Entries); len(removed) > 0 {
		logging.Debugf("dropped %d selection ids after mutation", len(removed))
		if err := b.saveSelection(ctx); err != nil {
			logging.Warnf("saving pruned selection failed: %v", err)
		}
	}
	return nil
}

// snapshot returns a private copy of the current state and selection
func (b *businessAPIImpl) snapshot(ctx context.Context) (domain.AppState, domain.Selection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return domain.AppState{}, domain.Selection{}, err
	}
	return b.state.Clone(), domain.NewSelection(b.selection.IDs()...), nil
}

func (b *businessAPIImpl) confirm(ctx context.Context, operation, prompt string) error {
	ok, err := b.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", operation, err)
	}
	if !ok {
		return errors.NewConfirmationDeclinedError(operation)
	}
	return nil
}

// ========== Timer Workflows ==========

// StartTimer starts the draft, stopping a running timer first
func (b *businessAPIImpl) StartTimer(ctx context.Context) (*domain.ActiveEntry, error) {
	var started domain.ActiveEntry
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.TimerService.StartTimer(state)
		if err != nil {
			return state, err
		}
		started = *next.Active
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	logging.Debugf("started timer %s", started.ID)
	return &started, nil
}

// StopTimer completes the running timer
func (b *businessAPIImpl) StopTimer(ctx context.Context) (*domain.TimeEntry, error) {
	var stopped *domain.TimeEntry
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		if state.TimerState() != domain.RunningTimer {
			return state, errUnchanged
		}
		next, err := b.services.TimerService.StopTimer(state)
		if err != nil {
			return state, err
		}
		entry := next.Entries[0]
		stopped = &entry
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return stopped, nil
}

// ContinueEntry starts a new timer seeded from a past entry
func (b *businessAPIImpl) ContinueEntry(ctx context.Context, id string) (*domain.ActiveEntry, error) {
	var started domain.ActiveEntry
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.TimerService.ContinueEntry(state, id)
		if err != nil {
			return state, err
		}
		started = *next.Active
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &started, nil
}

// AddManualEntry records a completed entry from two HH:MM times today
func (b *businessAPIImpl) AddManualEntry(ctx context.Context, from, to string) (*domain.TimeEntry, error) {
	var added domain.TimeEntry
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, entry, err := b.services.TimerService.AddManualEntry(state, from, to)
		if err != nil {
			return state, err
		}
		added = entry
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// ========== Entry Editing ==========

func (b *businessAPIImpl) UpdateEntryDescription(ctx context.Context, id, description string) error {
	return b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		return b.services.TimerService.UpdateEntryDescription(state, id, description)
	})
}

func (b *businessAPIImpl) UpdateEntryTime(ctx context.Context, id string, start time.Time, end *time.Time) error {
	return b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		return b.services.TimerService.UpdateEntryTime(state, id, start, end)
	})
}

// ToggleEntryBillable flips an entry's billable flag and returns the new value
func (b *businessAPIImpl) ToggleEntryBillable(ctx context.Context, id string) (bool, error) {
	var billable bool
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.TimerService.ToggleEntryBillable(state, id)
		if err != nil {
			return state, err
		}
		if i, ok := next.FindEntry(id); ok {
			billable = next.Entries[i].IsBillable
		} else if next.Active != nil {
			billable = next.Active.Billable()
		}
		return next, nil
	})
	return billable, err
}

func (b *businessAPIImpl) DeleteEntry(ctx context.Context, id string) error {
	return b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		return b.services.TimerService.DeleteEntry(state, id)
	})
}

// ========== Draft Editing ==========

func (b *businessAPIImpl) UpdateDraft(ctx context.Context, update services.DraftUpdate) (*domain.ActiveEntry, error) {
	var draft domain.ActiveEntry
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.TimerService.UpdateDraft(state, update)
		if err != nil {
			return state, err
		}
		draft = *next.Active
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (b *businessAPIImpl) ToggleDraftBillable(ctx context.Context) (bool, error) {
	var billable bool
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.TimerService.ToggleDraftBillable(state)
		if err != nil {
			return state, err
		}
		billable = next.Active.Billable()
		return next, nil
	})
	return billable, err
}

// SuggestDescription calls the suggestion collaborator outside the lock. The
// answer is applied only if the draft description did not change meanwhile.
func (b *businessAPIImpl) SuggestDescription(ctx context.Context) (*suggest.Suggestion, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if state.Active == nil {
		return nil, errors.NewNotFoundError("draft", "active")
	}
	if b.suggester == nil {
		return nil, errors.NewCollaboratorError("suggestion service", suggest.ErrNotConfigured)
	}

	original := state.Active.Description
	suggestion, err := b.suggester.Suggest(ctx, original)
	if err != nil {
		logging.Debugf("suggestion failed: %v", err)
		return nil, errors.NewCollaboratorError("suggestion service", err)
	}
	if suggestion == nil {
		return nil, nil
	}

	err = b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		if state.Active == nil || state.Active.Description != original {
			return state, errors.NewInvalidInputError("draft", original, "changed while the suggestion was pending")
		}
		return b.services.TimerService.ReplaceDraftDescription(state, suggestion.Description)
	})
	if err != nil {
		return nil, err
	}
	return suggestion, nil
}

// ========== Projects ==========

func (b *businessAPIImpl) AddProject(ctx context.Context, name string) (*domain.Project, error) {
	var added domain.Project
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, project, err := b.services.ProjectService.AddProject(state, name)
		if err != nil {
			return state, err
		}
		added = project
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (b *businessAPIImpl) UpdateProject(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	var updated domain.Project
	err := b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, err := b.services.ProjectService.UpdateProject(state, id, update)
		if err != nil {
			return state, err
		}
		updated, _ = next.Project(id)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject asks for confirmation, then removes the project together
// with every entry that references it
func (b *businessAPIImpl) DeleteProject(ctx context.Context, id string) ([]string, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	project, ok := state.Project(id)
	if !ok {
		return nil, errors.NewNotFoundError("project", id)
	}

	count := b.services.ProjectService.CountEntries(state, id)
	prompt := fmt.Sprintf("Delete project %q and its %d entries? This cannot be undone.", project.Name, count)
	if err := b.confirm(ctx, "delete project", prompt); err != nil {
		return nil, err
	}

	var removed []string
	err = b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		next, ids, err := b.services.ProjectService.DeleteProject(state, id)
		if err != nil {
			return state, err
		}
		removed = ids
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	logging.Debugf("deleted project %s with %d entries", id, len(removed))
	return removed, nil
}

func (b *businessAPIImpl) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(state.Projects))
	for _, project := range state.Projects {
		filter := domain.EntryFilter{ProjectID: project.ID}
		entries := b.services.SearchService.FilterEntries(state.Entries, filter)
		summaries = append(summaries, ProjectSummary{
			Project:    project,
			EntryCount: len(entries),
			Duration:   b.services.ReportingService.CalculateTotalDuration(entries),
		})
	}
	return summaries, nil
}

// ========== Settings ==========

func (b *businessAPIImpl) UpdateSettings(ctx context.Context, rate *float64, currency *domain.Currency) error {
	return b.mutate(ctx, func(state domain.AppState) (domain.AppState, error) {
		return b.services.SettingsService.UpdateSettings(state, rate, currency)
	})
}

// Reset asks for confirmation, deletes both stored documents and starts
// over from the default state
func (b *businessAPIImpl) Reset(ctx context.Context) error {
	if err := b.confirm(ctx, "reset", "Reset all data? Every entry, project and setting will be deleted. This cannot be undone."); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.repo.Reset(ctx); err != nil {
		return err
	}
	b.state = b.defaultState()
	b.selection = domain.NewSelection()
	b.loaded = true
	logging.Debugln("all data reset")
	return nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetState(ctx context.Context) (domain.AppState, error) {
	state, _, err := b.snapshot(ctx)
	return state, err
}

// GetStatus reports the active slot and the title a running timer shows
func (b *businessAPIImpl) GetStatus(ctx context.Context) (*Status, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := b.clock()
	status := &Status{
		State:  state.TimerState(),
		Active: state.Active,
		Title:  IdleTitle,
		At:     now,
	}
	if state.Active != nil {
		if project, ok := state.Project(state.Active.ProjectID); ok {
			status.Project = &project
		}
	}
	if status.State == domain.RunningTimer {
		status.Elapsed = state.Active.Elapsed(now)
		label := state.Active.Description
		if label == "" {
			label = b.runningStatus
		}
		status.Title = fmt.Sprintf("%s | %s", format.Duration(status.Elapsed), label)
	}
	return status, nil
}

func (b *businessAPIImpl) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.TimeEntry, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return b.services.SearchService.FilterEntries(state.Entries, filter), nil
}

func (b *businessAPIImpl) GroupEntries(ctx context.Context, filter domain.EntryFilter) ([]services.EntryGroup, error) {
	entries, err := b.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return b.services.SearchService.GroupEntriesByDate(entries), nil
}

func (b *businessAPIImpl) Summarize(ctx context.Context, filter domain.EntryFilter) (services.Rollup, error) {
	state, _, err := b.snapshot(ctx)
	if err != nil {
		return services.Rollup{}, err
	}
	entries := b.services.SearchService.FilterEntries(state.Entries, filter)
	return b.services.ReportingService.Summarize(state, entries), nil
}

func (b *businessAPIImpl) LastSaved(ctx context.Context) (*time.Time, error) {
	record, err := b.repo.GetRecord(ctx, sqlite.StateKey)
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	saved, err := record.UpdatedTime()
	if err != nil {
		return nil, errors.NewDatabaseError("read save time", err).WithContext("key", sqlite.StateKey)
	}
	saved = saved.In(b.location)
	return &saved, nil
}

func (b *businessAPIImpl) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.loaded = false
	return b.load(ctx)
}

// ========== Selection ==========

// ToggleSelection flips one entry in the selection and reports whether it
// is now selected
func (b *businessAPIImpl) ToggleSelection(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return false, err
	}
	if _, ok := b.state.FindEntry(id); !ok {
		return false, errors.NewNotFoundError("time entry", id)
	}

	next := domain.NewSelection(b.selection.IDs()...)
	selected := next.Toggle(id)
	if err := b.repo.SaveSelection(ctx, b.mapper.SelectionToDocument(next)); err != nil {
		return false, err
	}
	b.selection = next
	return selected, nil
}

// ToggleGroupSelection selects every entry of one day group, or deselects
// them all when they already are
func (b *businessAPIImpl) ToggleGroupSelection(ctx context.Context, key string, filter domain.EntryFilter) (*SelectionSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return nil, err
	}
	entries := b.services.SearchService.FilterEntries(b.state.Entries, filter)
	group, ok := b.services.SearchService.FindGroup(entries, key)
	if !ok {
		return nil, errors.NewNotFoundError("date group", key)
	}

	next := domain.NewSelection(b.selection.IDs()...)
	next.ToggleGroup(group.IDs())
	if err := b.repo.SaveSelection(ctx, b.mapper.SelectionToDocument(next)); err != nil {
		return nil, err
	}
	b.selection = next
	return b.selectionSummary(), nil
}

func (b *businessAPIImpl) ClearSelection(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return err
	}
	next := domain.NewSelection()
	if err := b.repo.SaveSelection(ctx, b.mapper.SelectionToDocument(next)); err != nil {
		return err
	}
	b.selection = next
	return nil
}

func (b *businessAPIImpl) GetSelection(ctx context.Context) (*SelectionSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(ctx); err != nil {
		return nil, err
	}
	return b.selectionSummary(), nil
}

// selectionSummary must be called with mu held
func (b *businessAPIImpl) selectionSummary() *SelectionSummary {
	return &SelectionSummary{
		IDs:    b.selection.IDs(),
		Rollup: b.services.ReportingService.SummarizeSelection(b.state, b.selection),
	}
}

// ========== Export ==========

// Export writes a report for the requested scope. The state is only read;
// a failed write leaves no file behind.
func (b *businessAPIImpl) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	state, selection, err := b.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	entries, name, err := b.exportEntries(state, selection, req)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.NewInvalidInputError("export", name, "no entries to export")
	}

	reportFormat := req.Format
	if reportFormat == "" {
		reportFormat = b.exportFormat
	}
	writer, err := export.NewWriter(reportFormat)
	if err != nil {
		return nil, errors.NewInvalidInputError("format", reportFormat, err.Error())
	}

	now := b.clock()
	report := export.BuildReport(state, entries, name, now, b.services.ReportingService)
	path := b.exportPath(req.Output, reportFormat, now)

	if err := writeReportFile(ctx, path, writer, report); err != nil {
		return nil, errors.NewCollaboratorError(string(reportFormat)+" export", err)
	}
	logging.Debugf("exported %d entries to %s", len(entries), path)
	return &ExportResult{Path: path, Report: report}, nil
}

func (b *businessAPIImpl) exportEntries(state domain.AppState, selection domain.Selection, req ExportRequest) ([]domain.TimeEntry, string, error) {
	switch req.Scope {
	case ExportProject:
		project, ok := state.Project(req.ProjectID)
		if !ok {
			return nil, "", errors.NewNotFoundError("project", req.ProjectID)
		}
		filter := domain.EntryFilter{ProjectID: project.ID}
		return b.services.SearchService.FilterEntries(state.Entries, filter), export.ProjectReportName(project.Name), nil
	case ExportSelection:
		entries := selection.Apply(state.Entries)
		return entries, export.SelectionReportName(len(entries)), nil
	default:
		return state.Entries, export.AllHistoryName, nil
	}
}

func (b *businessAPIImpl) exportPath(output string, f export.Format, now time.Time) string {
	if output == "" {
		return filepath.Join(b.exportDir, export.FileName(now, f))
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, export.FileName(now, f))
	}
	return output
}

// writeReportFile writes to a temporary file next to path and renames it
// into place once complete
func writeReportFile(ctx context.Context, path string, writer export.Writer, report export.Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tempo-report-*")
	if err != nil {
		return fmt.Errorf("create temporary report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writer.Write(tmp, report); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move report into place: %w", err)
	}
	return nil
}
