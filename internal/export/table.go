package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TableExporter renders a fixed-width text table.
type TableExporter struct{}

const columnGap = "  "

// Format returns the exporter name.
func (e *TableExporter) Format() string { return "table" }

// Extension returns the file extension.
func (e *TableExporter) Extension() string { return "txt" }

// Binary reports false.
func (e *TableExporter) Binary() bool { return false }

// Export writes the header, a rule, one line per row and the totals block.
func (e *TableExporter) Export(w io.Writer, rep *Report) error {
	cells := make([][]string, len(rep.Rows))
	widths := make([]int, len(rep.Columns))
	for i, c := range rep.Columns {
		widths[i] = len(c.Header)
	}
	for i, row := range rep.Rows {
		cells[i] = make([]string, len(rep.Columns))
		for j := range rep.Columns {
			if j < len(row) {
				cells[i][j] = formatCell(row[j])
			}
			widths[j] = max(widths[j], len(cells[i][j]))
		}
	}

	bw := bufio.NewWriter(w)
	writeLine(bw, rep.Columns, widths, rep.Headers())

	total := 0
	for _, n := range widths {
		total += n
	}
	if len(widths) > 1 {
		total += len(columnGap) * (len(widths) - 1)
	}
	fmt.Fprintln(bw, strings.Repeat("-", total))

	for _, row := range cells {
		writeLine(bw, rep.Columns, widths, row)
	}

	if len(rep.Totals) > 0 {
		labelWidth := 0
		values := make([]string, len(rep.Totals))
		valueWidth := 0
		for i, t := range rep.Totals {
			labelWidth = max(labelWidth, len(t.Label))
			values[i] = formatAmount(t.Value)
			valueWidth = max(valueWidth, len(values[i]))
		}
		fmt.Fprintln(bw)
		for i, t := range rep.Totals {
			fmt.Fprintf(bw, "%-*s%s%*s\n", labelWidth, t.Label, columnGap, valueWidth, values[i])
		}
	}
	return bw.Flush()
}

func writeLine(w io.Writer, cols []Column, widths []int, values []string) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		if c.Numeric {
			parts[i] = fmt.Sprintf("%*s", widths[i], values[i])
		} else {
			parts[i] = fmt.Sprintf("%-*s", widths[i], values[i])
		}
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, columnGap), " "))
}
