package services

import (
	"fmt"
	"testing"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestState() domain.AppState {
	return domain.DefaultState(50, domain.USD)
}

func at(hour, minute int) time.Time {
	return time.Date(testNow.Year(), testNow.Month(), testNow.Day(), hour, minute, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func floatPtr(f float64) *float64 {
	return &f
}

func stringPtr(s string) *string {
	return &s
}

func completedEntry(id string, start, end time.Time, projectID string) domain.TimeEntry {
	return domain.TimeEntry{
		ID:          id,
		Description: "work " + id,
		ProjectID:   projectID,
		StartTime:   start,
		EndTime:     &end,
		IsBillable:  true,
		HourlyRate:  50,
	}
}

func assertAppErrorType(t *testing.T, err error, errorType errors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.IsType(errorType), "expected %s, got %s", errorType, appErr.Type)
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	validationErr, ok := validation.AsValidationError(err)
	require.True(t, ok, "expected a ValidationError, got %T", err)
	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, field, "expected an error for %s", field)
}
