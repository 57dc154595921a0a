package export

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

const reportTitle = "Tempo Time Report"

var (
	tableHeaders   = []string{"Date", "Description", "Project", "Duration", "Amount"}
	tableGridSizes = []uint{2, 4, 2, 2, 2}
)

// PDFWriter lays a report out on A4 portrait pages
type PDFWriter struct {
	generatedLayout string
}

// NewPDFWriter creates a PDFWriter
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{generatedLayout: "Jan 2, 2006 15:04"}
}

func (p *PDFWriter) Format() Format { return FormatPDF }

func (p *PDFWriter) Write(w io.Writer, report Report) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(12, func() {
			m.Col(12, func() {
				m.Text(reportTitle, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
	})

	summary := []string{
		fmt.Sprintf("Generated on: %s", report.GeneratedAt.Format(p.generatedLayout)),
		fmt.Sprintf("Project Filter: %s", report.Name),
		fmt.Sprintf("Total Duration: %s", report.TotalDuration),
		fmt.Sprintf("Total Billable: %s", report.TotalBillable),
	}
	for _, line := range summary {
		m.Row(7, func() {
			m.Col(12, func() {
				m.Text(line, props.Text{
					Style: consts.Normal,
					Align: consts.Left,
					Size:  10,
				})
			})
		})
	}

	m.Row(5, func() {})

	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, []string{row.Date, row.Description, row.Project, row.Duration, row.AmountText})
	}

	m.TableList(tableHeaders, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: tableGridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: tableGridSizes,
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	buf, err := m.Output()
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
