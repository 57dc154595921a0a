package domain

import (
	"time"
)

// TimeEntry represents a recorded block of work in the domain model.
// HourlyRate is a snapshot taken when the entry was created; later changes
// to the project's rate never rewrite it.
type TimeEntry struct {
	ID          string
	Description string
	ProjectID   string // empty when unassigned
	StartTime   time.Time
	EndTime     *time.Time
	IsBillable  bool
	HourlyRate  float64
}

// IsRunning returns true if the entry has no end time yet.
func (te TimeEntry) IsRunning() bool {
	return te.EndTime == nil
}

// HasProject reports whether the entry references a project.
func (te TimeEntry) HasProject() bool {
	return te.ProjectID != ""
}

// Stop sets the end time for the entry.
func (te TimeEntry) Stop(endTime time.Time) TimeEntry {
	te.EndTime = &endTime
	return te
}

// Duration returns (end ?? start) - start, so running entries count as zero.
func (te TimeEntry) Duration() time.Duration {
	if te.EndTime == nil {
		return 0
	}
	return te.EndTime.Sub(te.StartTime)
}

// ElapsedAt returns the duration up to now for running entries.
func (te TimeEntry) ElapsedAt(now time.Time) time.Duration {
	if te.EndTime == nil {
		return now.Sub(te.StartTime)
	}
	return te.EndTime.Sub(te.StartTime)
}

// EndOr returns the end time, or now when the entry is still running.
func (te TimeEntry) EndOr(now time.Time) time.Time {
	if te.EndTime == nil {
		return now
	}
	return *te.EndTime
}

// BilledAmount returns hours * rate for completed billable entries, else 0.
func (te TimeEntry) BilledAmount() float64 {
	if !te.IsBillable || te.EndTime == nil {
		return 0
	}
	return te.Duration().Hours() * te.HourlyRate
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.ID == "" {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime != nil && !te.EndTime.After(te.StartTime) {
		return false
	}
	return true
}
