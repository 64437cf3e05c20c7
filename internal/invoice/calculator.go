// Package invoice derives totals for a set of priced, taxed line items.
package invoice

import (
	"github.com/cleared-dev/finsum/internal/model"
)

// Calculator computes invoice totals over a fixed set of line items. Totals are
// recomputed on every call; the calculator never modifies its items.
type Calculator struct {
	items []model.LineItem
}

// New creates a Calculator. It returns a *model.MissingFieldError if an item
// lacks a required field.
func New(items []model.LineItem) (*Calculator, error) {
	for i, item := range items {
		if err := model.Require("line item", i, item); err != nil {
			return nil, err
		}
	}
	return &Calculator{items: items}, nil
}

// Items returns the line items.
func (c *Calculator) Items() []model.LineItem {
	return c.items
}

// Subtotal returns the sum of quantity x unit price.
func (c *Calculator) Subtotal() float64 {
	var sum float64
	for _, item := range c.items {
		sum += item.Net()
	}
	return sum
}

// TotalTax returns the sum of quantity x unit price x tax rate.
func (c *Calculator) TotalTax() float64 {
	var sum float64
	for _, item := range c.items {
		sum += item.Tax()
	}
	return sum
}

// GrandTotal returns Subtotal() + TotalTax().
func (c *Calculator) GrandTotal() float64 {
	return c.Subtotal() + c.TotalTax()
}

// Totals returns all three amounts, unrounded.
func (c *Calculator) Totals() model.InvoiceTotals {
	sub := c.Subtotal()
	tax := c.TotalTax()
	return model.InvoiceTotals{
		Subtotal:   sub,
		TotalTax:   tax,
		GrandTotal: sub + tax,
	}
}
