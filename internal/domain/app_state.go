package domain

// DefaultThemeMode is stored for forward compatibility and never interpreted.
const DefaultThemeMode = "system"

// AppState is the whole persisted aggregate. Entries are kept newest first.
type AppState struct {
	Entries           []TimeEntry
	Projects          []Project
	Active            *ActiveEntry
	DefaultHourlyRate float64
	PreferredCurrency Currency
	ThemeMode         string
}

// DefaultState returns the state a fresh installation starts with.
func DefaultState(defaultRate float64, currency Currency) AppState {
	return AppState{
		Entries: []TimeEntry{},
		Projects: []Project{
			{ID: "1", Name: "Internal", Color: ProjectPalette[0]},
			{ID: "2", Name: "Design System", Color: ProjectPalette[4]},
		},
		DefaultHourlyRate: defaultRate,
		PreferredCurrency: currency,
		ThemeMode:         DefaultThemeMode,
	}
}

// TimerState classifies the active slot.
func (s AppState) TimerState() TimerState {
	switch {
	case s.Active == nil:
		return NoActiveTimer
	case s.Active.IsRunning():
		return RunningTimer
	default:
		return DraftTimer
	}
}

// FindEntry returns the index of the entry with id.
func (s AppState) FindEntry(id string) (int, bool) {
	for i, entry := range s.Entries {
		if entry.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindProject returns the index of the project with id.
func (s AppState) FindProject(id string) (int, bool) {
	for i, project := range s.Projects {
		if project.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Project returns the project with id.
func (s AppState) Project(id string) (Project, bool) {
	if i, ok := s.FindProject(id); ok {
		return s.Projects[i], true
	}
	return Project{}, false
}

// ProjectsByID indexes the projects by id.
func (s AppState) ProjectsByID() map[string]Project {
	byID := make(map[string]Project, len(s.Projects))
	for _, p := range s.Projects {
		byID[p.ID] = p
	}
	return byID
}

// EffectiveCurrency resolves the currency an entry is billed in.
func (s AppState) EffectiveCurrency(entry TimeEntry) Currency {
	if project, ok := s.Project(entry.ProjectID); ok {
		return project.CurrencyOr(s.PreferredCurrency)
	}
	return s.PreferredCurrency
}

// EffectiveRate resolves the rate a new entry on projectID captures.
func (s AppState) EffectiveRate(projectID string) float64 {
	if project, ok := s.Project(projectID); ok {
		return project.RateOr(s.DefaultHourlyRate)
	}
	return s.DefaultHourlyRate
}

// Clone returns a copy that shares no mutable memory with s.
func (s AppState) Clone() AppState {
	out := s
	out.Entries = make([]TimeEntry, len(s.Entries))
	for i, entry := range s.Entries {
		if entry.EndTime != nil {
			end := *entry.EndTime
			entry.EndTime = &end
		}
		out.Entries[i] = entry
	}
	out.Projects = make([]Project, len(s.Projects))
	for i, project := range s.Projects {
		if project.HourlyRate != nil {
			rate := *project.HourlyRate
			project.HourlyRate = &rate
		}
		out.Projects[i] = project
	}
	if s.Active != nil {
		active := *s.Active
		if active.StartTime != nil {
			start := *active.StartTime
			active.StartTime = &start
		}
		if active.IsBillable != nil {
			billable := *active.IsBillable
			active.IsBillable = &billable
		}
		if active.HourlyRate != nil {
			rate := *active.HourlyRate
			active.HourlyRate = &rate
		}
		out.Active = &active
	}
	return out
}

// OpenEntryCount counts entries without an end time, including a running
// active timer. It is at most one in a consistent state.
func (s AppState) OpenEntryCount() int {
	count := 0
	for _, entry := range s.Entries {
		if entry.IsRunning() {
			count++
		}
	}
	if s.TimerState() == RunningTimer {
		count++
	}
	return count
}
