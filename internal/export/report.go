// Package export renders history reports. Totals come from the same
// reporting rules the terminal views use.
package export

import (
	"fmt"
	"strings"
	"time"

	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"
	"tempo-tracker/internal/services"
)

// AllHistoryName names an unfiltered report
const AllHistoryName = "All History"

const (
	noDescription = "No description"
	noProject     = "No Project"
	notBillable   = "-"
)

// Format is an output format for a report
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", errors.NewInvalidInputError("format", s, "must be pdf, csv or json")
	}
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	return string(f)
}

// ProjectReportName names a report filtered to one project
func ProjectReportName(projectName string) string {
	return "Project: " + projectName
}

// SelectionReportName names a report built from an explicit selection
func SelectionReportName(count int) string {
	return fmt.Sprintf("Selection (%d entries)", count)
}

// FileName returns the default report file name for a generation date
func FileName(generatedAt time.Time, f Format) string {
	return fmt.Sprintf("tempo-report-%s.%s", generatedAt.Format("2006-01-02"), f.Extension())
}

// Row is one entry as it appears in a report
type Row struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Description     string    `json:"description"`
	Project         string    `json:"project"`
	Duration        string    `json:"duration"`
	DurationSeconds int64     `json:"durationSeconds"`
	Billable        bool      `json:"billable"`
	Amount          float64   `json:"amount"`
	AmountText      string    `json:"amountText"`
	Currency        string    `json:"currency"`
}

// Report is the writer-independent content of an export
type Report struct {
	Name          string        `json:"name"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	TotalDuration string        `json:"totalDuration"`
	TotalBillable string        `json:"totalBillable"`
	Totals        domain.Totals `json:"totals"`
	Rows          []Row         `json:"rows"`
}

// BuildReport turns entries into a report. Entries keep their given order.
func BuildReport(state domain.AppState, entries []domain.TimeEntry, name string, generatedAt time.Time, reporting services.ReportingService) Report {
	rollup := reporting.Summarize(state, entries)
	projects := state.ProjectsByID()

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		currency := state.EffectiveCurrency(entry)
		row := Row{
			ID:              entry.ID,
			Date:            format.DateKey(entry.StartTime),
			Start:           entry.StartTime,
			Description:     entry.Description,
			Project:         noProject,
			Duration:        format.Duration(entry.Duration()),
			DurationSeconds: int64(entry.Duration() / time.Second),
			Billable:        entry.IsBillable,
			Currency:        currency.String(),
			AmountText:      notBillable,
		}
		if entry.EndTime != nil {
			row.End = *entry.EndTime
		}
		if row.Description == "" {
			row.Description = noDescription
		}
		if project, ok := projects[entry.ProjectID]; ok {
			row.Project = project.Name
		}
		if entry.IsBillable {
			row.Amount = entry.BilledAmount()
			row.AmountText = format.Currency(row.Amount, currency)
		}
		rows = append(rows, row)
	}

	return Report{
		Name:          name,
		GeneratedAt:   generatedAt,
		TotalDuration: format.Duration(rollup.Duration),
		TotalBillable: format.Totals(rollup.Totals, state.PreferredCurrency),
		Totals:        rollup.Totals,
		Rows:          rows,
	}
}
