package commands_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finsum/internal/model"
)

type invoiceDoc struct {
	Title  string              `json:"title"`
	Rows   []map[string]any    `json:"rows"`
	Totals model.InvoiceTotals `json:"totals"`
}

func writeItems(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInvoice_Table(t *testing.T) {
	dir := initProject(t)
	out, _, err := runFinsum(t, "invoice", filepath.Join(dir, "data", "invoice.yaml"),
		"--config", filepath.Join(dir, "finsum.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "Laptop")
	assert.Contains(t, out, "Subtotal     6,500.00")
	assert.Contains(t, out, "Total Tax    1,235.00")
	assert.Contains(t, out, "Grand Total  7,735.00")
}

func TestInvoice_CSV(t *testing.T) {
	out, _, err := runFinsum(t, "invoice", "../../testdata/invoice.csv", "--config", noConfig(t), "--format", "json")
	require.NoError(t, err)

	var doc invoiceDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Invoice (EUR)", doc.Title)
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "Cable, USB-C", doc.Rows[2]["description"])
	assert.InDelta(t, 6537.5, doc.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 1242.125, doc.Totals.TotalTax, 1e-9)
	assert.InDelta(t, 7779.625, doc.Totals.GrandTotal, 1e-9)
}

func TestInvoice_Round(t *testing.T) {
	out, _, err := runFinsum(t, "invoice", "../../testdata/invoice.csv", "--config", noConfig(t),
		"--format", "json", "--round", "--currency", "USD")
	require.NoError(t, err)

	var doc invoiceDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Invoice (USD)", doc.Title)
	assert.Equal(t, model.InvoiceTotals{Subtotal: 6537.5, TotalTax: 1242.12, GrandTotal: 7779.62}, doc.Totals)
}

func TestInvoice_TaxRateWarning(t *testing.T) {
	path := writeItems(t, "items.yaml", `items:
  - description: Consulting
    quantity: 1
    unit_price: 100
    tax_rate: 19
`)
	out, stderr, err := runFinsum(t, "invoice", path, "--config", noConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Grand Total")
	assert.Contains(t, stderr, "tax rate outside [0, 1]")
}

func TestInvoice_Strict(t *testing.T) {
	path := writeItems(t, "items.csv", "description,quantity,unit_price,tax_rate\nA,1,10,1.5\nB,1,10,0.2\nC,1,10,-0.1\n")
	_, _, err := runFinsum(t, "invoice", path, "--config", noConfig(t), "--strict")
	require.Error(t, err)
	assert.Equal(t, "validation failed: item 0 [A]: tax rate 1.5 outside [0, 1]; item 2 [C]: tax rate -0.1 outside [0, 1]", err.Error())
}

func TestInvoice_MissingDescription(t *testing.T) {
	path := writeItems(t, "items.yaml", "items:\n  - quantity: 1\n    unit_price: 10\n    tax_rate: 0.1\n")
	_, _, err := runFinsum(t, "invoice", path, "--config", noConfig(t))
	require.Error(t, err)

	var mfe *model.MissingFieldError
	require.True(t, errors.As(err, &mfe), err.Error())
	assert.Equal(t, "description", mfe.Field)
	assert.Equal(t, 0, mfe.Index)
}

func TestInvoice_XLSX(t *testing.T) {
	outDir := t.TempDir()
	out, _, err := runFinsum(t, "invoice", "../../testdata/invoice.yaml", "--config", noConfig(t),
		"--format", "XLSX", "--out", outDir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(outDir, "invoice_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, out, matches[0])
}

func TestInvoice_JSONToOutDir(t *testing.T) {
	outDir := t.TempDir()
	_, _, err := runFinsum(t, "invoice", "../../testdata/invoice.yaml", "--config", noConfig(t),
		"--format", "json", "--out", outDir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(outDir, "invoice_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestInvoice_UnsupportedFile(t *testing.T) {
	path := writeItems(t, "items.txt", "whatever")
	_, _, err := runFinsum(t, "invoice", path, "--config", noConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported item file items.txt")
}
