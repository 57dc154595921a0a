package services

import (
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/validation"
)

// minimumEntryLength keeps a stopped entry's end strictly after its start
const minimumEntryLength = time.Millisecond

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	clock              Clock
	ids                IDGenerator
	validator          *validation.Validator
	timeEntryValidator *validation.TimeEntryValidator
}

// NewTimerService creates a new TimerService instance
func NewTimerService(clock Clock, ids IDGenerator, validator *validation.Validator) TimerService {
	return &timerServiceImpl{
		clock:              clock,
		ids:                ids,
		validator:          validator,
		timeEntryValidator: validation.NewTimeEntryValidatorWithValidator(validator),
	}
}

// StartTimer starts the draft, stopping a running timer first
func (s *timerServiceImpl) StartTimer(state domain.AppState) (domain.AppState, error) {
	next := state.Clone()
	now := s.clock()

	if next.TimerState() == domain.RunningTimer {
		next = s.stop(next, now)
	}

	draft := domain.ActiveEntry{}
	if next.Active != nil {
		draft = *next.Active
	}

	billable := draft.Billable()
	rate := next.EffectiveRate(draft.ProjectID)
	next.Active = &domain.ActiveEntry{
		ID:          s.ids(),
		Description: draft.Description,
		ProjectID:   draft.ProjectID,
		StartTime:   &now,
		IsBillable:  &billable,
		HourlyRate:  &rate,
	}
	return next, nil
}

// StopTimer completes the running timer. It is a no-op without one.
func (s *timerServiceImpl) StopTimer(state domain.AppState) (domain.AppState, error) {
	if state.TimerState() != domain.RunningTimer {
		return state, nil
	}
	return s.stop(state.Clone(), s.clock()), nil
}

func (s *timerServiceImpl) stop(state domain.AppState, now time.Time) domain.AppState {
	entry := state.Active.AsEntry()
	end := now
	if !end.After(entry.StartTime) {
		end = entry.StartTime.Add(minimumEntryLength)
	}
	state.Entries = prepend(state.Entries, entry.Stop(end))
	state.Active = nil
	return state
}

// ContinueEntry starts a new timer seeded from a past entry
func (s *timerServiceImpl) ContinueEntry(state domain.AppState, id string) (domain.AppState, error) {
	if err := s.timeEntryValidator.ValidateEntryID(id); err != nil {
		return state, err
	}
	i, ok := state.FindEntry(id)
	if !ok {
		return state, errors.NewNotFoundError("time entry", id)
	}
	source := state.Entries[i]

	next := state.Clone()
	now := s.clock()
	if next.TimerState() == domain.RunningTimer {
		next = s.stop(next, now)
	}

	billable := source.IsBillable
	rate := source.HourlyRate
	next.Active = &domain.ActiveEntry{
		ID:          s.ids(),
		Description: source.Description,
		ProjectID:   source.ProjectID,
		StartTime:   &now,
		IsBillable:  &billable,
		HourlyRate:  &rate,
	}
	return next, nil
}

// AddManualEntry records a completed entry from two HH:MM times anchored to
// today. A "to" that is not after "from" crosses midnight.
func (s *timerServiceImpl) AddManualEntry(state domain.AppState, from, to string) (domain.AppState, domain.TimeEntry, error) {
	if err := s.timeEntryValidator.ValidateManualRange(from, to); err != nil {
		return state, domain.TimeEntry{}, err
	}

	now := s.clock()
	day := domain.StartOfDay(now)
	fromHour, fromMinute, _ := s.validator.ParseTimeOfDay(from)
	toHour, toMinute, _ := s.validator.ParseTimeOfDay(to)

	start := atTimeOfDay(day, fromHour, fromMinute)
	end := atTimeOfDay(day, toHour, toMinute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	if conflictID, conflict := domain.FindConflict(state, start, end, "", now); conflict {
		return state, domain.TimeEntry{}, errors.NewConflictError(conflictID)
	}

	next := state.Clone()
	entry := domain.TimeEntry{
		ID:         s.ids(),
		StartTime:  start,
		EndTime:    &end,
		IsBillable: true,
	}
	// a draft that was never started donates its fields and is consumed
	if next.TimerState() == domain.DraftTimer {
		entry.Description = next.Active.Description
		entry.ProjectID = next.Active.ProjectID
		entry.IsBillable = next.Active.Billable()
		next.Active = nil
	}
	entry.HourlyRate = next.EffectiveRate(entry.ProjectID)

	next.Entries = prepend(next.Entries, entry)
	return next, entry, nil
}

// UpdateEntryDescription replaces the description of an entry or of the running timer
func (s *timerServiceImpl) UpdateEntryDescription(state domain.AppState, id, description string) (domain.AppState, error) {
	if err := s.timeEntryValidator.ValidateEntryID(id); err != nil {
		return state, err
	}
	if err := s.timeEntryValidator.ValidateDescription(description); err != nil {
		return state, err
	}

	next := state.Clone()
	if i, ok := next.FindEntry(id); ok {
		next.Entries[i].Description = description
		return next, nil
	}
	if isRunningID(next, id) {
		next.Active.Description = description
		return next, nil
	}
	return state, errors.NewNotFoundError("time entry", id)
}

// UpdateEntryTime replaces an entry's time window. A nil end keeps the
// current end. The running timer only accepts a new start.
func (s *timerServiceImpl) UpdateEntryTime(state domain.AppState, id string, start time.Time, end *time.Time) (domain.AppState, error) {
	now := s.clock()

	if isRunningID(state, id) {
		if end != nil {
			return state, errors.NewInvalidInputError("end", *end, "a running timer has no end time; stop it first")
		}
		if err := s.timeEntryValidator.ValidateTimeUpdate(id, start, &now); err != nil {
			return state, err
		}
		if conflictID, conflict := domain.FindConflict(state, start, now, id, now); conflict {
			return state, errors.NewConflictError(conflictID)
		}
		next := state.Clone()
		next.Active.StartTime = &start
		return next, nil
	}

	i, ok := state.FindEntry(id)
	if !ok {
		if err := s.timeEntryValidator.ValidateEntryID(id); err != nil {
			return state, err
		}
		return state, errors.NewNotFoundError("time entry", id)
	}

	newEnd := state.Entries[i].EndTime
	if end != nil {
		newEnd = end
	}
	if err := s.timeEntryValidator.ValidateTimeUpdate(id, start, newEnd); err != nil {
		return state, err
	}

	rangeEnd := now
	if newEnd != nil {
		rangeEnd = *newEnd
	}
	if conflictID, conflict := domain.FindConflict(state, start, rangeEnd, id, now); conflict {
		return state, errors.NewConflictError(conflictID)
	}

	next := state.Clone()
	next.Entries[i].StartTime = start
	if newEnd != nil {
		endCopy := *newEnd
		next.Entries[i].EndTime = &endCopy
	}
	return next, nil
}

// ToggleEntryBillable flips the billable flag of an entry or of the running timer
func (s *timerServiceImpl) ToggleEntryBillable(state domain.AppState, id string) (domain.AppState, error) {
	if err := s.timeEntryValidator.ValidateEntryID(id); err != nil {
		return state, err
	}

	next := state.Clone()
	if i, ok := next.FindEntry(id); ok {
		next.Entries[i].IsBillable = !next.Entries[i].IsBillable
		return next, nil
	}
	if isRunningID(next, id) {
		billable := !next.Active.Billable()
		next.Active.IsBillable = &billable
		return next, nil
	}
	return state, errors.NewNotFoundError("time entry", id)
}

// DeleteEntry removes an entry. Deleting the running timer discards it.
func (s *timerServiceImpl) DeleteEntry(state domain.AppState, id string) (domain.AppState, error) {
	if err := s.timeEntryValidator.ValidateEntryID(id); err != nil {
		return state, err
	}

	next := state.Clone()
	if i, ok := next.FindEntry(id); ok {
		next.Entries = append(next.Entries[:i], next.Entries[i+1:]...)
		return next, nil
	}
	if isRunningID(next, id) {
		next.Active = nil
		return next, nil
	}
	return state, errors.NewNotFoundError("time entry", id)
}

// UpdateDraft edits the active slot, creating a draft when it is empty
func (s *timerServiceImpl) UpdateDraft(state domain.AppState, update DraftUpdate) (domain.AppState, error) {
	if update.IsEmpty() {
		return state, errors.NewInvalidInputError("draft", nil, "nothing to change")
	}
	if update.Description != nil {
		if err := s.timeEntryValidator.ValidateDescription(*update.Description); err != nil {
			return state, err
		}
	}
	if update.ProjectID != nil && *update.ProjectID != "" {
		if _, ok := state.FindProject(*update.ProjectID); !ok {
			return state, errors.NewNotFoundError("project", *update.ProjectID)
		}
	}

	next := state.Clone()
	if next.Active == nil {
		next.Active = &domain.ActiveEntry{}
	}
	if update.Description != nil {
		next.Active.Description = *update.Description
	}
	if update.ProjectID != nil {
		next.Active.ProjectID = *update.ProjectID
	}
	if update.IsBillable != nil {
		billable := *update.IsBillable
		next.Active.IsBillable = &billable
	}
	return next, nil
}

// ToggleDraftBillable flips the active slot's billable flag. An empty slot
// becomes a billable draft.
func (s *timerServiceImpl) ToggleDraftBillable(state domain.AppState) (domain.AppState, error) {
	next := state.Clone()
	billable := true
	if next.Active == nil {
		next.Active = &domain.ActiveEntry{}
	} else {
		billable = !next.Active.Billable()
	}
	next.Active.IsBillable = &billable
	return next, nil
}

// ReplaceDraftDescription swaps in a suggested description. Only the
// description of an existing draft changes.
func (s *timerServiceImpl) ReplaceDraftDescription(state domain.AppState, description string) (domain.AppState, error) {
	if state.Active == nil {
		return state, errors.NewNotFoundError("draft", "active")
	}
	if err := s.timeEntryValidator.ValidateDescription(description); err != nil {
		return state, err
	}
	next := state.Clone()
	next.Active.Description = description
	return next, nil
}

func isRunningID(state domain.AppState, id string) bool {
	return state.TimerState() == domain.RunningTimer && state.Active.ID == id
}

func atTimeOfDay(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func prepend(entries []domain.TimeEntry, entry domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, 0, len(entries)+1)
	out = append(out, entry)
	return append(out, entries...)
}
