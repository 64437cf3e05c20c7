package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFExporter writes an A4 portrait document using the core Helvetica font.
type PDFExporter struct{}

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
)

// Format returns the exporter name.
func (e *PDFExporter) Format() string { return "pdf" }

// Extension returns the file extension.
func (e *PDFExporter) Extension() string { return "pdf" }

// Binary reports true.
func (e *PDFExporter) Binary() bool { return true }

// Export writes the title, a header line, one " | "-joined line per row, the
// totals and a "Generated:" footer on every page.
func (e *PDFExporter) Export(w io.Writer, rep *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(rep.Title, true)
	pdf.SetCreator("finsum", true)
	pdf.SetCreationDate(rep.GeneratedAt)
	footer := generatedLine(rep.GeneratedAt)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, footer, "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	line := func(text string) {
		pdf.CellFormat(0, pdfLineHeight, tr(text), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, tr(rep.Title), "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFont, "B", 10)
	line(strings.Join(rep.Headers(), " | "))

	pdf.SetFont(pdfFont, "", 10)
	for _, row := range rep.Rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = formatCell(v)
		}
		line(strings.Join(parts, " | "))
	}

	if len(rep.Totals) > 0 {
		pdf.Ln(pdfLineHeight)
		pdf.SetFont(pdfFont, "B", 10)
		for _, t := range rep.Totals {
			line(t.Label + ": " + formatAmount(t.Value))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
