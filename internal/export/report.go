// Package export renders computed summaries and invoice totals to text,
// JSON, XLSX and PDF.
package export

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cleared-dev/finsum/internal/model"
)

// Column describes one report column.
type Column struct {
	Key     string // machine name, used by JSON
	Header  string // display name
	Numeric bool   // right-aligned in text output
}

// Total is a labelled figure printed below the rows.
type Total struct {
	Key   string
	Label string
	Value float64
}

// Report is a format-neutral table. Row cells hold string, int, float64 or
// model.Metric values, one per column.
type Report struct {
	Title       string
	Columns     []Column
	Rows        [][]any
	Totals      []Total
	GeneratedAt time.Time
}

// Headers returns the display names of the columns.
func (r *Report) Headers() []string {
	h := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		h[i] = c.Header
	}
	return h
}

// SummaryReport lays out company summaries, one row per company.
func SummaryReport(summaries []model.CompanySummary, at time.Time) *Report {
	rep := &Report{
		Title: "Financial summary",
		Columns: []Column{
			{Key: "company", Header: "Company"},
			{Key: "avg_profit", Header: "Avg Profit", Numeric: true},
			{Key: "yoy_growth_pct", Header: "YoY Growth %", Numeric: true},
			{Key: "profit_margin_pct", Header: "Margin %", Numeric: true},
		},
		GeneratedAt: at,
	}
	for _, s := range summaries {
		rep.Rows = append(rep.Rows, []any{s.Company, s.AvgProfit, s.YoYGrowthPct, s.ProfitMarginPct})
	}
	return rep
}

// InvoiceReport lays out line items with the invoice totals below them.
func InvoiceReport(items []model.LineItem, totals model.InvoiceTotals, currency string, at time.Time) *Report {
	title := "Invoice"
	if currency != "" {
		title += " (" + currency + ")"
	}
	rep := &Report{
		Title: title,
		Columns: []Column{
			{Key: "description", Header: "Description"},
			{Key: "quantity", Header: "Qty", Numeric: true},
			{Key: "unit_price", Header: "Unit Price", Numeric: true},
			{Key: "tax_rate", Header: "Tax Rate", Numeric: true},
			{Key: "net", Header: "Net", Numeric: true},
		},
		Totals: []Total{
			{Key: "subtotal", Label: "Subtotal", Value: totals.Subtotal},
			{Key: "total_tax", Label: "Total Tax", Value: totals.TotalTax},
			{Key: "grand_total", Label: "Grand Total", Value: totals.GrandTotal},
		},
		GeneratedAt: at,
	}
	for _, item := range items {
		rep.Rows = append(rep.Rows, []any{item.Description, item.Quantity, item.UnitPrice, item.TaxRate, item.Net()})
	}
	return rep
}

// formatCell renders a cell for text-based outputs. Amounts get thousands
// separators and two decimals.
func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case float64:
		return formatAmount(c)
	case model.Metric:
		if !c.Valid {
			return model.NotApplicable
		}
		return formatAmount(c.Value)
	default:
		return ""
	}
}

func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func generatedLine(at time.Time) string {
	return "Generated: " + at.Format(time.DateTime)
}
