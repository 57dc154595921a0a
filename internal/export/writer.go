package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Writer renders a report to w
type Writer interface {
	Format() Format
	Write(w io.Writer, report Report) error
}

// NewWriter returns the writer for f
func NewWriter(f Format) (Writer, error) {
	switch f {
	case FormatPDF:
		return NewPDFWriter(), nil
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatJSON:
		return JSONWriter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}

// CSVWriter writes one line per entry after a header line
type CSVWriter struct{}

var csvHeader = []string{"Date", "Description", "Project", "Duration", "Billable", "Amount", "Currency"}

func (CSVWriter) Format() Format { return FormatCSV }

func (CSVWriter) Write(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows {
		amount := ""
		if row.Billable {
			amount = strconv.FormatFloat(row.Amount, 'f', 2, 64)
		}
		record := []string{
			row.Date,
			row.Description,
			row.Project,
			row.Duration,
			strconv.FormatBool(row.Billable),
			amount,
			row.Currency,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONWriter writes the report as one JSON document
type JSONWriter struct {
	Indent string
}

func (JSONWriter) Format() Format { return FormatJSON }

func (jw JSONWriter) Write(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	if jw.Indent != "" {
		enc.SetIndent("", jw.Indent)
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
