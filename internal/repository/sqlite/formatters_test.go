package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	input := time.Date(2025, 3, 10, 11, 30, 15, 500, loc)

	assert.Equal(t, "2025-03-10T09:30:15Z", FormatTimeForDB(input))
}

func TestParseTimeFromDB(t *testing.T) {
	t.Run("should parse RFC3339 values", func(t *testing.T) {
		parsed, err := ParseTimeFromDB("2025-03-10T09:30:15Z")
		require.NoError(t, err)
		assert.True(t, parsed.Equal(time.Date(2025, 3, 10, 9, 30, 15, 0, time.UTC)))
	})

	t.Run("should reject other layouts", func(t *testing.T) {
		_, err := ParseTimeFromDB("2025-03-10 09:30:15")
		assert.Error(t, err)
	})
}

func TestRecordUpdatedTime(t *testing.T) {
	record := &Record{UpdatedAt: "2025-03-10T09:30:15Z"}

	updated, err := record.UpdatedTime()
	require.NoError(t, err)
	assert.Equal(t, 2025, updated.Year())
}
