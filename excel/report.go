package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReportContentType is the MIME type of the generated report.
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const reportSheet = "Discrepancias"

// ReportHeaders is the fixed column order of the discrepancy report. The
// data contract is the order; the styling below is presentation only.
var ReportHeaders = []string{
	"Código Material",
	"Descripción",
	"Unidad",
	"Ubicación",
	"Stock sistema",
	"Stock contado",
	"Diferencia",
	"Estado",
}

const (
	colSystemStock  = 4
	colCountedStock = 5
	colDifference   = 6
	colStatus       = 7
)

// ReportFilename builds the download name for a report generated at t.
func ReportFilename(t time.Time) string {
	return "discrepancias_inventario_" + t.Format("20060102_150405") + ".xlsx"
}

type reportStyles struct {
	header    int
	text      int
	number    int
	redNumber int
	status    map[string]int
}

// BuildDiscrepancyReport renders the reconciliation result as a styled
// xlsx workbook: dark header row (frozen), two-decimal right-aligned
// numbers, negative differences in red, status cells color-keyed, column
// widths fitted to content.
func BuildDiscrepancyReport(rows []DiscrepancyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	styles, err := buildReportStyles(f)
	if err != nil {
		return nil, err
	}

	for col, name := range ReportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, styles.header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		if err := writeReportRow(f, styles, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := autoSizeColumns(f, rows); err != nil {
		return nil, err
	}

	if err := f.SetPanes(reportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeReportRow(f *excelize.File, styles reportStyles, rowNo int, row DiscrepancyRow) error {
	values := []interface{}{
		row.MaterialCode,
		row.Description,
		row.Unit,
		row.Location,
		row.SystemStock,
		row.CountedStock,
		row.Difference,
		row.Status,
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, value); err != nil {
			return err
		}

		style := styles.text
		switch col {
		case colSystemStock, colCountedStock:
			style = styles.number
		case colDifference:
			style = styles.number
			if row.Difference < 0 {
				style = styles.redNumber
			}
		case colStatus:
			if s, ok := styles.status[row.Status]; ok {
				style = s
			} else {
				style = styles.status[StatusOK]
			}
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func buildReportStyles(f *excelize.File) (reportStyles, error) {
	var styles reportStyles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	numFmt := "#,##0.00"

	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return styles, err
	}

	styles.text, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return styles, err
	}

	styles.number, err = f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       border,
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return styles, err
	}

	styles.redNumber, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Color: "FF0000"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       border,
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return styles, err
	}

	statusFills := map[string]string{
		StatusOK:       "D9EAF7",
		StatusShortage: "FCE4D6",
		StatusCritical: "F4CCCC",
		StatusSurplus:  "D9EAD3",
	}
	styles.status = make(map[string]int, len(statusFills))
	for status, fill := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		})
		if err != nil {
			return styles, err
		}
		styles.status[status] = id
	}

	return styles, nil
}

// autoSizeColumns widens each column to its longest rendered value,
// header included, plus a little padding.
func autoSizeColumns(f *excelize.File, rows []DiscrepancyRow) error {
	for col, name := range ReportHeaders {
		maxLen := len([]rune(name))
		for _, row := range rows {
			var rendered string
			switch col {
			case 0:
				rendered = row.MaterialCode
			case 1:
				rendered = row.Description
			case 2:
				rendered = row.Unit
			case 3:
				rendered = row.Location
			case colSystemStock:
				rendered = fmt.Sprintf("%.2f", row.SystemStock)
			case colCountedStock:
				rendered = fmt.Sprintf("%.2f", row.CountedStock)
			case colDifference:
				rendered = fmt.Sprintf("%.2f", row.Difference)
			case colStatus:
				rendered = row.Status
			}
			if n := len([]rune(rendered)); n > maxLen {
				maxLen = n
			}
		}

		letter, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(reportSheet, letter, letter, float64(maxLen+2)); err != nil {
			return err
		}
	}
	return nil
}
