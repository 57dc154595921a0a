package domain

import (
	"strings"
	"time"
)

// AllProjects disables the project predicate.
const AllProjects = "all"

// EntryFilter holds the active history filters. Every set predicate must hold.
type EntryFilter struct {
	SearchQuery string
	ProjectID   string
	StartDate   *time.Time
	EndDate     *time.Time
}

// IsEmpty reports whether no predicate is active.
func (f EntryFilter) IsEmpty() bool {
	return strings.TrimSpace(f.SearchQuery) == "" && !f.hasProject() && f.StartDate == nil && f.EndDate == nil
}

func (f EntryFilter) hasProject() bool {
	return f.ProjectID != "" && f.ProjectID != AllProjects
}

// Matches reports whether entry passes every active predicate.
func (f EntryFilter) Matches(entry TimeEntry) bool {
	if query := strings.TrimSpace(f.SearchQuery); query != "" {
		if !strings.Contains(strings.ToLower(entry.Description), strings.ToLower(query)) {
			return false
		}
	}
	if f.hasProject() && entry.ProjectID != f.ProjectID {
		return false
	}
	if f.StartDate != nil && entry.StartTime.Before(StartOfDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && entry.StartTime.After(EndOfDay(*f.EndDate)) {
		return false
	}
	return true
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
