package domain

import (
	"time"

	"tempo-tracker/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain and persisted entries.
type TimeEntryMapper struct {
	location *time.Location
}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper(location *time.Location) *TimeEntryMapper {
	return &TimeEntryMapper{location: location}
}

// ToDatabase converts a domain TimeEntry to a persisted record.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.EntryRecord {
	return sqlite.EntryRecord{
		ID:          entry.ID,
		Description: entry.Description,
		ProjectID:   entry.ProjectID,
		StartTime:   entry.StartTime.UnixMilli(),
		EndTime:     toMillisPtr(entry.EndTime),
		IsBillable:  entry.IsBillable,
		HourlyRate:  entry.HourlyRate,
	}
}

// FromDatabase converts a persisted record to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(record sqlite.EntryRecord) TimeEntry {
	return TimeEntry{
		ID:          record.ID,
		Description: record.Description,
		ProjectID:   record.ProjectID,
		StartTime:   fromMillis(record.StartTime, m.location),
		EndTime:     fromMillisPtr(record.EndTime, m.location),
		IsBillable:  record.IsBillable,
		HourlyRate:  record.HourlyRate,
	}
}

// ToDatabaseSlice converts a slice of domain entries to records.
func (m *TimeEntryMapper) ToDatabaseSlice(entries []TimeEntry) []sqlite.EntryRecord {
	records := make([]sqlite.EntryRecord, len(entries))
	for i, entry := range entries {
		records[i] = m.ToDatabase(entry)
	}
	return records
}

// FromDatabaseSlice converts a slice of records to domain entries.
func (m *TimeEntryMapper) FromDatabaseSlice(records []sqlite.EntryRecord) []TimeEntry {
	entries := make([]TimeEntry, len(records))
	for i, record := range records {
		entries[i] = m.FromDatabase(record)
	}
	return entries
}

// ProjectMapper handles conversion between domain and persisted projects.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a persisted record.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.ProjectRecord {
	return sqlite.ProjectRecord{
		ID:         project.ID,
		Name:       project.Name,
		Color:      project.Color,
		ClientName: project.ClientName,
		HourlyRate: copyFloat(project.HourlyRate),
		Currency:   string(project.Currency),
	}
}

// FromDatabase converts a persisted record to a domain Project.
func (m *ProjectMapper) FromDatabase(record sqlite.ProjectRecord) Project {
	return Project{
		ID:         record.ID,
		Name:       record.Name,
		Color:      record.Color,
		ClientName: record.ClientName,
		HourlyRate: copyFloat(record.HourlyRate),
		Currency:   Currency(record.Currency),
	}
}

// ActiveEntryMapper handles conversion of the active timer slot.
type ActiveEntryMapper struct {
	location *time.Location
}

// ToDatabase converts the active slot; nil stays nil.
func (m *ActiveEntryMapper) ToDatabase(active *ActiveEntry) *sqlite.ActiveRecord {
	if active == nil {
		return nil
	}
	return &sqlite.ActiveRecord{
		ID:          active.ID,
		Description: active.Description,
		ProjectID:   active.ProjectID,
		StartTime:   toMillisPtr(active.StartTime),
		IsBillable:  copyBool(active.IsBillable),
		HourlyRate:  copyFloat(active.HourlyRate),
	}
}

// FromDatabase converts a persisted active record; nil stays nil.
func (m *ActiveEntryMapper) FromDatabase(record *sqlite.ActiveRecord) *ActiveEntry {
	if record == nil {
		return nil
	}
	return &ActiveEntry{
		ID:          record.ID,
		Description: record.Description,
		ProjectID:   record.ProjectID,
		StartTime:   fromMillisPtr(record.StartTime, m.location),
		IsBillable:  copyBool(record.IsBillable),
		HourlyRate:  copyFloat(record.HourlyRate),
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	TimeEntry   *TimeEntryMapper
	Project     *ProjectMapper
	ActiveEntry *ActiveEntryMapper
}

// NewMapper creates a Mapper that materializes times in the local zone.
func NewMapper() *Mapper {
	return NewMapperIn(time.Local)
}

// NewMapperIn creates a Mapper that materializes times in location.
func NewMapperIn(location *time.Location) *Mapper {
	return &Mapper{
		TimeEntry:   NewTimeEntryMapper(location),
		Project:     NewProjectMapper(),
		ActiveEntry: &ActiveEntryMapper{location: location},
	}
}

// StateToDocument converts the whole state to its persisted shape.
func (m *Mapper) StateToDocument(state AppState) sqlite.StateDocument {
	projects := make([]sqlite.ProjectRecord, len(state.Projects))
	for i, project := range state.Projects {
		projects[i] = m.Project.ToDatabase(project)
	}
	rate := state.DefaultHourlyRate
	return sqlite.StateDocument{
		Entries:           m.TimeEntry.ToDatabaseSlice(state.Entries),
		Projects:          projects,
		ActiveEntry:       m.ActiveEntry.ToDatabase(state.Active),
		DefaultHourlyRate: &rate,
		PreferredCurrency: string(state.PreferredCurrency),
		ThemeMode:         state.ThemeMode,
	}
}

// StateFromDocument converts a decoded document to domain state. The
// document is expected to have been backfilled already.
func (m *Mapper) StateFromDocument(doc sqlite.StateDocument) AppState {
	projects := make([]Project, len(doc.Projects))
	for i, record := range doc.Projects {
		projects[i] = m.Project.FromDatabase(record)
	}
	var rate float64
	if doc.DefaultHourlyRate != nil {
		rate = *doc.DefaultHourlyRate
	}
	return AppState{
		Entries:           m.TimeEntry.FromDatabaseSlice(doc.Entries),
		Projects:          projects,
		Active:            m.ActiveEntry.FromDatabase(doc.ActiveEntry),
		DefaultHourlyRate: rate,
		PreferredCurrency: Currency(doc.PreferredCurrency),
		ThemeMode:         doc.ThemeMode,
	}
}

// SelectionToDocument converts a selection to its persisted shape.
func (m *Mapper) SelectionToDocument(selection Selection) sqlite.SelectionDocument {
	return sqlite.SelectionDocument{IDs: selection.IDs()}
}

// SelectionFromDocument converts a persisted selection.
func (m *Mapper) SelectionFromDocument(doc sqlite.SelectionDocument) Selection {
	return NewSelection(doc.IDs...)
}

func toMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms int64, location *time.Location) time.Time {
	return time.UnixMilli(ms).In(location)
}

func fromMillisPtr(ms *int64, location *time.Location) *time.Time {
	if ms == nil {
		return nil
	}
	t := fromMillis(*ms, location)
	return &t
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
