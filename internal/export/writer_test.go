package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"tempo-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	state := reportState()
	return BuildReport(state, state.Entries, "Project: Internal", generatedAt, services.NewReportingService())
}

func TestNewWriter(t *testing.T) {
	for _, f := range []Format{FormatPDF, FormatCSV, FormatJSON} {
		w, err := NewWriter(f)
		require.NoError(t, err)
		assert.Equal(t, f, w.Format())
	}

	_, err := NewWriter("xml")
	assert.Error(t, err)
}

func TestCSVWriter_Write(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	err := CSVWriter{}.Write(&buf, sampleReport())

	// Assert
	require.NoError(t, err)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"2025-03-10", "work e3", "Persian Client", "02:00:00", "true", "160.00", "IRT"}, records[1])
	assert.Equal(t, []string{"2025-03-10", "work e2", "No Project", "00:30:00", "false", "", "USD"}, records[2])
}

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer

	err := JSONWriter{Indent: "  "}.Write(&buf, sampleReport())

	require.NoError(t, err)
	var decoded struct {
		Name          string             `json:"name"`
		TotalDuration string             `json:"totalDuration"`
		Totals        map[string]float64 `json:"totals"`
		Rows          []Row              `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Project: Internal", decoded.Name)
	assert.Equal(t, "04:00:00", decoded.TotalDuration)
	assert.Equal(t, map[string]float64{"IRT": 160, "USD": 75}, decoded.Totals)
	assert.Len(t, decoded.Rows, 3)
}

func TestPDFWriter_Write(t *testing.T) {
	var buf bytes.Buffer

	err := NewPDFWriter().Write(&buf, sampleReport())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}
