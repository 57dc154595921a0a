package services

import (
	"testing"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTimerService(t *testing.T) (TimerService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: testNow}
	return NewTimerService(clock.Now, sequentialIDs("e"), validation.NewValidator()), clock
}

func TestTimerService_StartAndStop(t *testing.T) {
	t.Run("should record a billable entry at the default rate", func(t *testing.T) {
		// Arrange
		service, clock := setupTimerService(t)
		state := newTestState()
		state.Active = &domain.ActiveEntry{Description: "Design review"}

		// Act
		state, err := service.StartTimer(state)
		require.NoError(t, err)
		clock.Advance(90 * time.Minute)
		state, err = service.StopTimer(state)
		require.NoError(t, err)

		// Assert
		require.Len(t, state.Entries, 1)
		entry := state.Entries[0]
		assert.Equal(t, "Design review", entry.Description)
		assert.Equal(t, "", entry.ProjectID)
		assert.True(t, entry.IsBillable)
		assert.Equal(t, 90*time.Minute, entry.Duration())
		assert.InDelta(t, 75.0, entry.BilledAmount(), 1e-9)
		assert.Nil(t, state.Active)
	})

	t.Run("should capture the project rate when the draft has a project", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		state.Projects[0].HourlyRate = floatPtr(80)
		state.Active = &domain.ActiveEntry{ProjectID: state.Projects[0].ID}

		state, err := service.StartTimer(state)

		require.NoError(t, err)
		assert.Equal(t, 80.0, state.Active.Rate())
	})

	t.Run("should keep a draft's billable flag", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		billable := false
		state.Active = &domain.ActiveEntry{IsBillable: &billable}

		state, err := service.StartTimer(state)

		require.NoError(t, err)
		assert.False(t, state.Active.Billable())
	})

	t.Run("should stop a running timer before starting another", func(t *testing.T) {
		service, clock := setupTimerService(t)
		state, _ := service.StartTimer(newTestState())
		firstID := state.Active.ID
		clock.Advance(time.Hour)

		state, err := service.StartTimer(state)

		require.NoError(t, err)
		require.Len(t, state.Entries, 1)
		assert.Equal(t, firstID, state.Entries[0].ID)
		assert.NotEqual(t, firstID, state.Active.ID)
		assert.Equal(t, 1, state.OpenEntryCount())
	})

	t.Run("should do nothing when stopping without a running timer", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		state.Active = &domain.ActiveEntry{Description: "draft only"}

		next, err := service.StopTimer(state)

		require.NoError(t, err)
		assert.Empty(t, next.Entries)
		assert.Equal(t, "draft only", next.Active.Description)
	})

	t.Run("should keep the end strictly after the start", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state, _ := service.StartTimer(newTestState())

		state, err := service.StopTimer(state)

		require.NoError(t, err)
		entry := state.Entries[0]
		assert.True(t, entry.EndTime.After(entry.StartTime))
		assert.True(t, entry.IsValid())
	})

	t.Run("should insert stopped entries newest first", func(t *testing.T) {
		service, clock := setupTimerService(t)
		state := newTestState()
		for i := 0; i < 3; i++ {
			state, _ = service.StartTimer(state)
			clock.Advance(10 * time.Minute)
			state, _ = service.StopTimer(state)
		}

		require.Len(t, state.Entries, 3)
		assert.Equal(t, "e3", state.Entries[0].ID)
		assert.Equal(t, "e1", state.Entries[2].ID)
	})
}

func TestTimerService_ContinueEntry(t *testing.T) {
	t.Run("should seed a new timer from a past entry", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		past := completedEntry("old", at(8, 0), at(9, 0), "2")
		past.IsBillable = false
		past.HourlyRate = 65
		state.Entries = []domain.TimeEntry{past}

		state, err := service.ContinueEntry(state, "old")

		require.NoError(t, err)
		require.NotNil(t, state.Active)
		assert.NotEqual(t, "old", state.Active.ID)
		assert.Equal(t, past.Description, state.Active.Description)
		assert.Equal(t, "2", state.Active.ProjectID)
		assert.False(t, state.Active.Billable())
		assert.Equal(t, 65.0, state.Active.Rate())
		assert.Equal(t, testNow, *state.Active.StartTime)
	})

	t.Run("should stop the running timer first", func(t *testing.T) {
		service, clock := setupTimerService(t)
		state := newTestState()
		state.Entries = []domain.TimeEntry{completedEntry("old", at(8, 0), at(9, 0), "")}
		state, _ = service.StartTimer(state)
		clock.Advance(5 * time.Minute)

		state, err := service.ContinueEntry(state, "old")

		require.NoError(t, err)
		assert.Len(t, state.Entries, 2)
		assert.Equal(t, 1, state.OpenEntryCount())
	})

	t.Run("should return not found for unknown ids", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.ContinueEntry(newTestState(), "missing")

		assertAppErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestTimerService_AddManualEntry(t *testing.T) {
	t.Run("should reject an overlapping second entry", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()

		state, entry, err := service.AddManualEntry(state, "09:00", "10:30")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, entry.Duration())
		assert.Equal(t, at(9, 0), entry.StartTime)

		before := state
		next, _, err := service.AddManualEntry(state, "10:00", "11:00")

		assertAppErrorType(t, err, errors.ErrorTypeConflict)
		conflictID, _ := err.(*errors.AppError).GetContext("conflicting_id")
		assert.Equal(t, entry.ID, conflictID)
		assert.Equal(t, before.Entries, next.Entries)
	})

	t.Run("should accept ranges that only touch", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state, _, err := service.AddManualEntry(newTestState(), "09:00", "10:00")
		require.NoError(t, err)

		state, _, err = service.AddManualEntry(state, "10:00", "11:00")

		require.NoError(t, err)
		assert.Len(t, state.Entries, 2)
	})

	t.Run("should cross midnight when the end is not after the start", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, entry, err := service.AddManualEntry(newTestState(), "23:00", "01:00")

		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, entry.Duration())
	})

	t.Run("should treat equal times as a full day", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, entry, err := service.AddManualEntry(newTestState(), "08:00", "08:00")

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, entry.Duration())
	})

	t.Run("should reject malformed times", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, _, err := service.AddManualEntry(newTestState(), "9am", "25:00")

		assertValidationField(t, err, "from")
		assertValidationField(t, err, "to")
	})

	t.Run("should conflict with a running timer", func(t *testing.T) {
		service, clock := setupTimerService(t)
		clock.now = at(11, 0)
		state, _ := service.StartTimer(newTestState())
		runningID := state.Active.ID
		clock.now = at(12, 0)

		_, _, err := service.AddManualEntry(state, "11:30", "11:45")

		assertAppErrorType(t, err, errors.ErrorTypeConflict)
		conflictID, _ := err.(*errors.AppError).GetContext("conflicting_id")
		assert.Equal(t, runningID, conflictID)
	})

	t.Run("should consume a draft but keep a running timer", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		billable := false
		state.Active = &domain.ActiveEntry{Description: "backfill", ProjectID: "1", IsBillable: &billable}

		state, entry, err := service.AddManualEntry(state, "07:00", "08:00")
		require.NoError(t, err)
		assert.Equal(t, "backfill", entry.Description)
		assert.Equal(t, "1", entry.ProjectID)
		assert.False(t, entry.IsBillable)
		assert.Nil(t, state.Active)

		state, _ = service.StartTimer(state)
		state, _, err = service.AddManualEntry(state, "05:00", "06:00")
		require.NoError(t, err)
		assert.Equal(t, domain.RunningTimer, state.TimerState())
	})
}

func TestTimerService_UpdateEntryTime(t *testing.T) {
	base := func() domain.AppState {
		state := newTestState()
		state.Entries = []domain.TimeEntry{
			completedEntry("b", at(10, 0), at(11, 0), ""),
			completedEntry("a", at(8, 0), at(9, 0), ""),
		}
		return state
	}

	tests := []struct {
		name           string
		id             string
		start          time.Time
		end            *time.Time
		errorAssertion func(t *testing.T, err error)
		check          func(t *testing.T, state domain.AppState)
	}{
		{
			name:  "should replace the window",
			id:    "a",
			start: at(7, 0),
			end:   timePtr(at(9, 30)),
			check: func(t *testing.T, state domain.AppState) {
				assert.Equal(t, at(7, 0), state.Entries[1].StartTime)
				assert.Equal(t, at(9, 30), *state.Entries[1].EndTime)
			},
		},
		{
			name:  "should keep the current end when none is given",
			id:    "a",
			start: at(8, 30),
			check: func(t *testing.T, state domain.AppState) {
				assert.Equal(t, at(9, 0), *state.Entries[1].EndTime)
				assert.Equal(t, 30*time.Minute, state.Entries[1].Duration())
			},
		},
		{
			name:  "should reject an end before the start",
			id:    "a",
			start: at(9, 0),
			end:   timePtr(at(8, 0)),
			errorAssertion: func(t *testing.T, err error) {
				assertValidationField(t, err, "time_range")
			},
		},
		{
			name:  "should reject an end equal to the start",
			id:    "a",
			start: at(8, 0),
			end:   timePtr(at(8, 0)),
			errorAssertion: func(t *testing.T, err error) {
				assertValidationField(t, err, "time_range")
			},
		},
		{
			name:  "should reject overlapping another entry",
			id:    "a",
			start: at(8, 0),
			end:   timePtr(at(10, 30)),
			errorAssertion: func(t *testing.T, err error) {
				assertAppErrorType(t, err, errors.ErrorTypeConflict)
			},
		},
		{
			name:  "should return not found for unknown ids",
			id:    "zzz",
			start: at(1, 0),
			end:   timePtr(at(2, 0)),
			errorAssertion: func(t *testing.T, err error) {
				assertAppErrorType(t, err, errors.ErrorTypeNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, _ := setupTimerService(t)
			state := base()

			// Act
			next, err := service.UpdateEntryTime(state, tt.id, tt.start, tt.end)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Equal(t, base().Entries, next.Entries)
				return
			}
			require.NoError(t, err)
			tt.check(t, next)
			assert.Equal(t, at(8, 0), state.Entries[1].StartTime, "input state must not change")
		})
	}

	t.Run("should move the start of the running timer", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state, _ := service.StartTimer(base())

		next, err := service.UpdateEntryTime(state, state.Active.ID, at(11, 15), nil)

		require.NoError(t, err)
		assert.Equal(t, at(11, 15), *next.Active.StartTime)
	})

	t.Run("should refuse an end for the running timer", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state, _ := service.StartTimer(base())

		_, err := service.UpdateEntryTime(state, state.Active.ID, at(11, 15), timePtr(at(11, 30)))

		assertAppErrorType(t, err, errors.ErrorTypeInvalidInput)
	})
}

func TestTimerService_EntryMutations(t *testing.T) {
	base := func() domain.AppState {
		state := newTestState()
		state.Entries = []domain.TimeEntry{completedEntry("a", at(8, 0), at(9, 0), "")}
		return state
	}

	t.Run("should update the description", func(t *testing.T) {
		service, _ := setupTimerService(t)

		next, err := service.UpdateEntryDescription(base(), "a", "Client call")

		require.NoError(t, err)
		assert.Equal(t, "Client call", next.Entries[0].Description)
	})

	t.Run("should toggle billable twice back to the original", func(t *testing.T) {
		service, _ := setupTimerService(t)

		once, err := service.ToggleEntryBillable(base(), "a")
		require.NoError(t, err)
		assert.False(t, once.Entries[0].IsBillable)

		twice, err := service.ToggleEntryBillable(once, "a")
		require.NoError(t, err)
		assert.True(t, twice.Entries[0].IsBillable)
	})

	t.Run("should delete an entry", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := base()

		next, err := service.DeleteEntry(state, "a")

		require.NoError(t, err)
		assert.Empty(t, next.Entries)
		assert.Len(t, state.Entries, 1)
	})

	t.Run("should discard the running timer when it is deleted", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state, _ := service.StartTimer(base())

		next, err := service.DeleteEntry(state, state.Active.ID)

		require.NoError(t, err)
		assert.Nil(t, next.Active)
		assert.Len(t, next.Entries, 1)
	})

	t.Run("should report unknown ids", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.UpdateEntryDescription(base(), "nope", "x")
		assertAppErrorType(t, err, errors.ErrorTypeNotFound)

		_, err = service.ToggleEntryBillable(base(), "nope")
		assertAppErrorType(t, err, errors.ErrorTypeNotFound)

		_, err = service.DeleteEntry(base(), "nope")
		assertAppErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("should reject empty ids", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.DeleteEntry(base(), " ")

		assertValidationField(t, err, "entry_id")
	})
}

func TestTimerService_Draft(t *testing.T) {
	t.Run("should create a draft when the slot is empty", func(t *testing.T) {
		service, _ := setupTimerService(t)

		next, err := service.UpdateDraft(newTestState(), DraftUpdate{Description: stringPtr("Planning"), ProjectID: stringPtr("2")})

		require.NoError(t, err)
		assert.Equal(t, domain.DraftTimer, next.TimerState())
		assert.Equal(t, "Planning", next.Active.Description)
		assert.Equal(t, "2", next.Active.ProjectID)
	})

	t.Run("should clear the project with an empty id", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		state.Active = &domain.ActiveEntry{ProjectID: "1"}

		next, err := service.UpdateDraft(state, DraftUpdate{ProjectID: stringPtr("")})

		require.NoError(t, err)
		assert.Equal(t, "", next.Active.ProjectID)
	})

	t.Run("should reject unknown projects", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.UpdateDraft(newTestState(), DraftUpdate{ProjectID: stringPtr("ghost")})

		assertAppErrorType(t, err, errors.ErrorTypeNotFound)
	})

	t.Run("should reject empty updates", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.UpdateDraft(newTestState(), DraftUpdate{})

		assertAppErrorType(t, err, errors.ErrorTypeInvalidInput)
	})

	t.Run("should toggle draft billable", func(t *testing.T) {
		service, _ := setupTimerService(t)

		created, err := service.ToggleDraftBillable(newTestState())
		require.NoError(t, err)
		assert.True(t, created.Active.Billable())

		flipped, err := service.ToggleDraftBillable(created)
		require.NoError(t, err)
		assert.False(t, flipped.Active.Billable())
	})

	t.Run("should flip the shown default of a draft with no billable flag", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		state.Active = &domain.ActiveEntry{Description: "fix bug"}
		require.True(t, state.Active.Billable())

		next, err := service.ToggleDraftBillable(state)

		require.NoError(t, err)
		require.NotNil(t, next.Active.IsBillable)
		assert.False(t, *next.Active.IsBillable)
		assert.Nil(t, state.Active.IsBillable)
	})

	t.Run("should replace only the draft description", func(t *testing.T) {
		service, _ := setupTimerService(t)
		state := newTestState()
		state.Active = &domain.ActiveEntry{Description: "fix bug", ProjectID: "1"}

		next, err := service.ReplaceDraftDescription(state, "Resolve defect in billing export")

		require.NoError(t, err)
		assert.Equal(t, "Resolve defect in billing export", next.Active.Description)
		assert.Equal(t, "1", next.Active.ProjectID)
		assert.Equal(t, "fix bug", state.Active.Description)
	})

	t.Run("should need a draft to replace", func(t *testing.T) {
		service, _ := setupTimerService(t)

		_, err := service.ReplaceDraftDescription(newTestState(), "x")

		assertAppErrorType(t, err, errors.ErrorTypeNotFound)
	})
}
