package domain

import "time"

// Overlaps reports whether the half-open ranges [s1, e1) and [s2, e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflict returns the id of the first entry whose range overlaps
// [start, end). Running entries end at now. The entry with excludeID is
// skipped, as is an active timer with that id.
func FindConflict(state AppState, start, end time.Time, excludeID string, now time.Time) (string, bool) {
	for _, entry := range state.Entries {
		if excludeID != "" && entry.ID == excludeID {
			continue
		}
		if Overlaps(start, end, entry.StartTime, entry.EndOr(now)) {
			return entry.ID, true
		}
	}

	if state.Active != nil && state.Active.IsRunning() {
		if excludeID == "" || state.Active.ID != excludeID {
			if Overlaps(start, end, *state.Active.StartTime, now) {
				return state.Active.ID, true
			}
		}
	}

	return "", false
}
