package services

import (
	"sort"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/format"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct {
	location *time.Location
}

// NewSearchService creates a new SearchService that buckets days in location
func NewSearchService(location *time.Location) SearchService {
	if location == nil {
		location = time.Local
	}
	return &searchServiceImpl{location: location}
}

// FilterEntries returns the entries matching every active predicate, in order
func (s *searchServiceImpl) FilterEntries(entries []domain.TimeEntry, filter domain.EntryFilter) []domain.TimeEntry {
	matched := make([]domain.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.Matches(entry) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// GroupEntriesByDate buckets entries by calendar day of their start time.
// Groups are ordered newest first by each group's most recent entry.
func (s *searchServiceImpl) GroupEntriesByDate(entries []domain.TimeEntry) []EntryGroup {
	byKey := make(map[string]*EntryGroup)
	latest := make(map[string]time.Time)
	var keys []string

	for _, entry := range entries {
		local := entry.StartTime.In(s.location)
		key := format.DateKey(local)
		group, ok := byKey[key]
		if !ok {
			group = &EntryGroup{Key: key, Label: format.DateLabel(local)}
			byKey[key] = group
			keys = append(keys, key)
		}
		group.Entries = append(group.Entries, entry)
		group.Total += entry.Duration()
		if entry.StartTime.After(latest[key]) {
			latest[key] = entry.StartTime
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return latest[keys[i]].After(latest[keys[j]])
	})

	groups := make([]EntryGroup, len(keys))
	for i, key := range keys {
		groups[i] = *byKey[key]
	}
	return groups
}

// FindGroup returns the day group with the given YYYY-MM-DD key
func (s *searchServiceImpl) FindGroup(entries []domain.TimeEntry, key string) (EntryGroup, bool) {
	for _, group := range s.GroupEntriesByDate(entries) {
		if group.Key == key {
			return group, true
		}
	}
	return EntryGroup{}, false
}
