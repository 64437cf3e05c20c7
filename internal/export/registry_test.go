package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finsum/internal/model"
)

var generatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleSummaries() []model.CompanySummary {
	return []model.CompanySummary{
		{Company: "ACME", AvgProfit: 13500, YoYGrowthPct: model.MetricOf(25), ProfitMarginPct: model.MetricOf(12)},
		{Company: "Beta", AvgProfit: 500, YoYGrowthPct: model.NA(), ProfitMarginPct: model.NA()},
	}
}

func sampleInvoice() *Report {
	items := []model.LineItem{
		{Description: "Laptop", Quantity: 2, UnitPrice: 3000, TaxRate: 0.19},
		{Description: "Mouse", Quantity: 5, UnitPrice: 100, TaxRate: 0.19},
	}
	totals := model.InvoiceTotals{Subtotal: 6500, TotalTax: 1235, GrandTotal: 7735}
	return InvoiceReport(items, totals, "EUR", generatedAt)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&TableExporter{})
	e := r.Get("table")
	require.NotNil(t, e)
	assert.Equal(t, "table", e.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&JSONExporter{})
	assert.NotNil(t, r.Get("Json"))
	assert.NotNil(t, r.Get("JSON"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&PDFExporter{})
	assert.Panics(t, func() { r.Register(&PDFExporter{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"table", "json", "xlsx", "pdf"}, r.Formats())
	assert.False(t, r.Get("table").Binary())
	assert.False(t, r.Get("json").Binary())
	assert.True(t, r.Get("xlsx").Binary())
	assert.True(t, r.Get("pdf").Binary())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "report_2026-03-14.pdf", FileName("report", "pdf", generatedAt))
	assert.Equal(t, "invoice_2026-03-14.xlsx", FileName("invoice", "XLSX", generatedAt))
}

func TestWriteFile_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "2026")
	rep := SummaryReport(sampleSummaries(), generatedAt)

	path, err := WriteFile(dir, "report.json", &JSONExporter{}, rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&JSONExporter{}).Export(&buf, rep))
	assert.Equal(t, buf.String(), string(data))
}

func TestWriteFile_DirIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "reports")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WriteFile(blocker, "report.txt", &TableExporter{}, SummaryReport(nil, generatedAt))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating output dir")
}

func TestSummaryReport(t *testing.T) {
	rep := SummaryReport(sampleSummaries(), generatedAt)
	assert.Equal(t, []string{"Company", "Avg Profit", "YoY Growth %", "Margin %"}, rep.Headers())
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "ACME", rep.Rows[0][0])
	assert.Equal(t, model.NA(), rep.Rows[1][2])
	assert.Empty(t, rep.Totals)
}

func TestInvoiceReport(t *testing.T) {
	rep := sampleInvoice()
	assert.Equal(t, "Invoice (EUR)", rep.Title)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, []any{"Laptop", 2, 3000.0, 0.19, 6000.0}, rep.Rows[0])
	require.Len(t, rep.Totals, 3)
	assert.Equal(t, "grand_total", rep.Totals[2].Key)
	assert.Equal(t, 7735.0, rep.Totals[2].Value)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "ACME", formatCell("ACME"))
	assert.Equal(t, "5", formatCell(5))
	assert.Equal(t, "1,234,567.89", formatCell(1234567.891))
	assert.Equal(t, "-1,500.00", formatCell(-1500.0))
	assert.Equal(t, "12.50", formatCell(model.MetricOf(12.5)))
	assert.Equal(t, "N/A", formatCell(model.NA()))
}
