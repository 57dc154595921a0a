package domain

import "sort"

// Selection is an explicit set of selected entry ids. It is independent of
// any filter and must be pruned when entries disappear.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates a selection holding ids.
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// ToggleGroup deselects every id when all of them are selected, otherwise
// selects all of them.
func (s *Selection) ToggleGroup(ids []string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	allSelected := len(ids) > 0
	for _, id := range ids {
		if !s.Contains(id) {
			allSelected = false
			break
		}
	}
	for _, id := range ids {
		if allSelected {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
	}
}

// Prune drops ids that no longer name an entry and returns the removed ids.
func (s *Selection) Prune(entries []TimeEntry) []string {
	if len(s.ids) == 0 {
		return nil
	}
	existing := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		existing[entry.ID] = struct{}{}
	}
	var removed []string
	for id := range s.ids {
		if _, ok := existing[id]; !ok {
			delete(s.ids, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// IDs returns the selected ids in sorted order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply returns the selected entries, keeping their order.
func (s Selection) Apply(entries []TimeEntry) []TimeEntry {
	selected := make([]TimeEntry, 0, len(s.ids))
	for _, entry := range entries {
		if s.Contains(entry.ID) {
			selected = append(selected, entry)
		}
	}
	return selected
}
