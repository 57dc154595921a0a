package domain

import "time"

// TimerState is the state of the single active timer slot.
type TimerState int

const (
	NoActiveTimer TimerState = iota
	DraftTimer
	RunningTimer
)

func (s TimerState) String() string {
	switch s {
	case DraftTimer:
		return "draft"
	case RunningTimer:
		return "running"
	default:
		return "idle"
	}
}

// ActiveEntry is the in-progress draft. ID and StartTime are only
// guaranteed once the timer has actually been started.
type ActiveEntry struct {
	ID          string
	Description string
	ProjectID   string
	StartTime   *time.Time
	IsBillable  *bool
	HourlyRate  *float64
}

// IsRunning reports whether the draft has been started.
func (a ActiveEntry) IsRunning() bool {
	return a.StartTime != nil
}

// Billable returns the billable flag, defaulting to true when unset.
func (a ActiveEntry) Billable() bool {
	if a.IsBillable == nil {
		return true
	}
	return *a.IsBillable
}

// Rate returns the captured rate, or 0 when none was captured.
func (a ActiveEntry) Rate() float64 {
	if a.HourlyRate == nil {
		return 0
	}
	return *a.HourlyRate
}

// AsEntry views a running draft as an open TimeEntry.
func (a ActiveEntry) AsEntry() TimeEntry {
	entry := TimeEntry{
		ID:          a.ID,
		Description: a.Description,
		ProjectID:   a.ProjectID,
		IsBillable:  a.Billable(),
		HourlyRate:  a.Rate(),
	}
	if a.StartTime != nil {
		entry.StartTime = *a.StartTime
	}
	return entry
}

// Elapsed returns the running time at now, 0 for drafts.
func (a ActiveEntry) Elapsed(now time.Time) time.Duration {
	if a.StartTime == nil {
		return 0
	}
	return now.Sub(*a.StartTime)
}
