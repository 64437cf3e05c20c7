package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/finsum/internal/model"
)

// XLSXExporter writes a single-sheet Excel workbook.
type XLSXExporter struct{}

// SheetName is the name of the only worksheet.
const SheetName = "Report"

const amountFormat = 4 // built-in "#,##0.00"

// Format returns the exporter name.
func (e *XLSXExporter) Format() string { return "xlsx" }

// Extension returns the file extension.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Binary reports true.
func (e *XLSXExporter) Binary() bool { return true }

// Export writes the header row, data rows, a blank row, the totals and a
// "Generated:" footer row.
func (e *XLSXExporter) Export(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   rep.Title,
		Created: rep.GeneratedAt.Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("setting properties: %w", err)
	}

	row := 1
	put := func(values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
		return nil
	}

	header := make([]any, len(rep.Columns))
	for i, c := range rep.Columns {
		header[i] = c.Header
	}
	if err := put(header); err != nil {
		return err
	}
	if err := e.styleSheet(f, rep); err != nil {
		return err
	}

	for _, r := range rep.Rows {
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = xlsxValue(v)
		}
		if err := put(values); err != nil {
			return err
		}
	}

	row++
	for _, t := range rep.Totals {
		if err := put([]any{t.Label, t.Value}); err != nil {
			return err
		}
	}
	if len(rep.Totals) > 0 {
		row++
	}
	if err := put([]any{generatedLine(rep.GeneratedAt)}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func (e *XLSXExporter) styleSheet(f *excelize.File, rep *Report) error {
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	for i, c := range rep.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := 14.0
		if !c.Numeric {
			width = 28
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
		if c.Numeric && !integerColumn(rep, i) {
			if err := f.SetColStyle(SheetName, name, amount); err != nil {
				return fmt.Errorf("styling column %s: %w", name, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}

func integerColumn(rep *Report, col int) bool {
	if len(rep.Rows) == 0 || col >= len(rep.Rows[0]) {
		return false
	}
	_, ok := rep.Rows[0][col].(int)
	return ok
}

// xlsxValue keeps numbers numeric so the sheet stays usable for formulas.
func xlsxValue(v any) any {
	if m, ok := v.(model.Metric); ok {
		if !m.Valid {
			return model.NotApplicable
		}
		return m.Value
	}
	return v
}
