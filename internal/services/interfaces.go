package services

import (
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/validation"

	"github.com/google/uuid"
)

// Clock returns the current instant
type Clock func() time.Time

// IDGenerator returns a fresh opaque id
type IDGenerator func() string

// SystemClock reads the wall clock at millisecond precision, the precision
// the stored document keeps.
func SystemClock() time.Time {
	return time.UnixMilli(time.Now().UnixMilli())
}

// NewUUID returns a random UUID string
func NewUUID() string {
	return uuid.NewString()
}

// DraftUpdate is a partial change to the active slot; nil means unchanged.
// An empty ProjectID clears the project.
type DraftUpdate struct {
	Description *string
	ProjectID   *string
	IsBillable  *bool
}

// IsEmpty reports whether the update carries no fields
func (u DraftUpdate) IsEmpty() bool {
	return u.Description == nil && u.ProjectID == nil && u.IsBillable == nil
}

// EntryGroup is one calendar day of history
type EntryGroup struct {
	Key     string             `json:"key"`
	Label   string             `json:"label"`
	Entries []domain.TimeEntry `json:"entries"`
	Total   time.Duration      `json:"total"`
}

// IDs returns the ids of the group's entries
func (g EntryGroup) IDs() []string {
	ids := make([]string, len(g.Entries))
	for i, entry := range g.Entries {
		ids[i] = entry.ID
	}
	return ids
}

// Rollup summarizes a set of entries
type Rollup struct {
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration"`
	Totals   domain.Totals `json:"totals"`
}

// TimerService manages the active timer and the entry history. Every
// operation takes a state and returns the next one without touching the input.
type TimerService interface {
	// Timer lifecycle
	StartTimer(state domain.AppState) (domain.AppState, error)
	StopTimer(state domain.AppState) (domain.AppState, error)
	ContinueEntry(state domain.AppState, id string) (domain.AppState, error)

	// Manual entries
	AddManualEntry(state domain.AppState, from, to string) (domain.AppState, domain.TimeEntry, error)

	// Entry mutations
	UpdateEntryDescription(state domain.AppState, id, description string) (domain.AppState, error)
	UpdateEntryTime(state domain.AppState, id string, start time.Time, end *time.Time) (domain.AppState, error)
	ToggleEntryBillable(state domain.AppState, id string) (domain.AppState, error)
	DeleteEntry(state domain.AppState, id string) (domain.AppState, error)

	// Draft editing
	UpdateDraft(state domain.AppState, update DraftUpdate) (domain.AppState, error)
	ToggleDraftBillable(state domain.AppState) (domain.AppState, error)
	ReplaceDraftDescription(state domain.AppState, description string) (domain.AppState, error)
}

// ProjectService handles the project registry
type ProjectService interface {
	AddProject(state domain.AppState, name string) (domain.AppState, domain.Project, error)
	UpdateProject(state domain.AppState, id string, update domain.ProjectUpdate) (domain.AppState, error)
	DeleteProject(state domain.AppState, id string) (domain.AppState, []string, error)
	CountEntries(state domain.AppState, id string) int
}

// SettingsService handles the application-wide defaults
type SettingsService interface {
	UpdateSettings(state domain.AppState, rate *float64, currency *domain.Currency) (domain.AppState, error)
}

// SearchService handles filtering and grouping of history
type SearchService interface {
	FilterEntries(entries []domain.TimeEntry, filter domain.EntryFilter) []domain.TimeEntry
	GroupEntriesByDate(entries []domain.TimeEntry) []EntryGroup
	FindGroup(entries []domain.TimeEntry, key string) (EntryGroup, bool)
}

// ReportingService handles billing and duration aggregation
type ReportingService interface {
	CalculateTotalsByCurrency(state domain.AppState, entries []domain.TimeEntry) domain.Totals
	CalculateTotalDuration(entries []domain.TimeEntry) time.Duration
	Summarize(state domain.AppState, entries []domain.TimeEntry) Rollup
	SummarizeSelection(state domain.AppState, selection domain.Selection) Rollup
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimerService     TimerService
	ProjectService   ProjectService
	SettingsService  SettingsService
	SearchService    SearchService
	ReportingService ReportingService
}

// NewServiceContainer wires every service around one clock, id source and
// validator
func NewServiceContainer(clock Clock, ids IDGenerator, validator *validation.Validator) *ServiceContainer {
	if clock == nil {
		clock = SystemClock
	}
	if ids == nil {
		ids = NewUUID
	}
	if validator == nil {
		validator = validation.NewValidator()
	}

	return &ServiceContainer{
		TimerService:     NewTimerService(clock, ids, validator),
		ProjectService:   NewProjectService(ids, validator, nil),
		SettingsService:  NewSettingsService(validator),
		SearchService:    NewSearchService(time.Local),
		ReportingService: NewReportingService(),
	}
}
