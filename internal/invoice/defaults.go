package invoice

import "github.com/cleared-dev/finsum/internal/model"

// SampleItems returns the line items written by `finsum init`.
func SampleItems() []model.LineItem {
	return []model.LineItem{
		{Description: "Laptop", Quantity: 2, UnitPrice: 3000, TaxRate: 0.19},
		{Description: "Mouse", Quantity: 5, UnitPrice: 100, TaxRate: 0.19},
	}
}
