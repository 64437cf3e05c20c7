package model

import "github.com/shopspring/decimal"

// LineItem is one priced, taxed invoice line.
type LineItem struct {
	Description string  `json:"description" yaml:"description" validate:"required"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`
	TaxRate     float64 `json:"tax_rate" yaml:"tax_rate"` // fraction, expected in [0, 1]
}

// Net returns quantity x unit price.
func (li LineItem) Net() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// Tax returns the tax owed on the line.
func (li LineItem) Tax() float64 {
	return li.Net() * li.TaxRate
}

// InvoiceTotals holds the derived invoice amounts. Values are not rounded.
type InvoiceTotals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalTax   float64 `json:"total_tax"`
	GrandTotal float64 `json:"grand_total"`
}

// Rounded rounds subtotal and tax half-to-even and recomputes the grand total
// from the rounded parts, so the rendered figures still add up.
func (t InvoiceTotals) Rounded(places int32) InvoiceTotals {
	sub := decimal.NewFromFloat(t.Subtotal).RoundBank(places)
	tax := decimal.NewFromFloat(t.TotalTax).RoundBank(places)
	return InvoiceTotals{
		Subtotal:   sub.InexactFloat64(),
		TotalTax:   tax.InexactFloat64(),
		GrandTotal: sub.Add(tax).InexactFloat64(),
	}
}
