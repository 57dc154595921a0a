package services

import (
	"testing"
	"time"

	"tempo-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() []domain.TimeEntry {
	day1 := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	entries := []domain.TimeEntry{
		completedEntry("d2b", day2.Add(14*time.Hour), day2.Add(15*time.Hour), "1"),
		completedEntry("d2a", day2.Add(9*time.Hour), day2.Add(10*time.Hour+30*time.Minute), "2"),
		completedEntry("d1a", day1.Add(9*time.Hour), day1.Add(11*time.Hour), "1"),
	}
	entries[0].Description = "Design review"
	entries[1].Description = "Client CALL"
	entries[2].Description = "design sync"
	return entries
}

func TestSearchService_FilterEntries(t *testing.T) {
	service := NewSearchService(time.UTC)
	day2 := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   domain.EntryFilter
		expected []string
	}{
		{"should return everything for an empty filter", domain.EntryFilter{}, []string{"d2b", "d2a", "d1a"}},
		{"should match descriptions case-insensitively", domain.EntryFilter{SearchQuery: "DESIGN"}, []string{"d2b", "d1a"}},
		{"should match a project exactly", domain.EntryFilter{ProjectID: "2"}, []string{"d2a"}},
		{"should ignore the all-projects sentinel", domain.EntryFilter{ProjectID: domain.AllProjects}, []string{"d2b", "d2a", "d1a"}},
		{"should include the whole end day", domain.EntryFilter{StartDate: &day2, EndDate: &day2}, []string{"d2b", "d2a"}},
		{"should AND every predicate", domain.EntryFilter{SearchQuery: "design", ProjectID: "1", StartDate: &day2}, []string{"d2b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.FilterEntries(historyFixture(), tt.filter)

			ids := make([]string, len(result))
			for i, entry := range result {
				ids[i] = entry.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	t.Run("should be idempotent", func(t *testing.T) {
		filter := domain.EntryFilter{SearchQuery: "design"}
		once := service.FilterEntries(historyFixture(), filter)
		twice := service.FilterEntries(once, filter)
		assert.Equal(t, once, twice)
	})
}

func TestSearchService_GroupEntriesByDate(t *testing.T) {
	service := NewSearchService(time.UTC)

	groups := service.GroupEntriesByDate(historyFixture())

	require.Len(t, groups, 2)
	assert.Equal(t, "2025-03-09", groups[0].Key)
	assert.Equal(t, "Sun, Mar 9, 2025", groups[0].Label)
	assert.Equal(t, []string{"d2b", "d2a"}, groups[0].IDs())
	assert.Equal(t, 150*time.Minute, groups[0].Total)
	assert.Equal(t, "2025-03-08", groups[1].Key)
	assert.Equal(t, 2*time.Hour, groups[1].Total)
}

func TestSearchService_GroupOrderFollowsMostRecentEntry(t *testing.T) {
	service := NewSearchService(time.UTC)
	entries := historyFixture()
	// an older day listed first must still sort after the newer day
	entries[0], entries[2] = entries[2], entries[0]

	groups := service.GroupEntriesByDate(entries)

	require.Len(t, groups, 2)
	assert.Equal(t, "2025-03-09", groups[0].Key)
}

func TestSearchService_GroupsUseLocation(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*60*60+30*60)
	service := NewSearchService(tehran)
	late := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)

	groups := service.GroupEntriesByDate([]domain.TimeEntry{completedEntry("x", late, late.Add(time.Hour), "")})

	require.Len(t, groups, 1)
	assert.Equal(t, "2025-03-10", groups[0].Key)
}

func TestSearchService_FindGroup(t *testing.T) {
	service := NewSearchService(time.UTC)

	group, ok := service.FindGroup(historyFixture(), "2025-03-08")
	require.True(t, ok)
	assert.Equal(t, []string{"d1a"}, group.IDs())

	_, ok = service.FindGroup(historyFixture(), "2024-01-01")
	assert.False(t, ok)
}
