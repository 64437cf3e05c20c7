package invoice

import (
	"fmt"

	"github.com/cleared-dev/finsum/internal/model"
)

// ValidationError describes one line item with an out-of-range tax rate.
type ValidationError struct {
	Index       int
	Description string
	TaxRate     float64
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("item %d [%s]: tax rate %v outside [0, 1]", e.Index, e.Description, e.TaxRate)
}

// ValidateTaxRates returns the items whose tax rate falls outside [0, 1].
// It only reports; callers decide whether that is an error.
func (c *Calculator) ValidateTaxRates() []model.LineItem {
	var invalid []model.LineItem
	for _, item := range c.items {
		if !validRate(item.TaxRate) {
			invalid = append(invalid, item)
		}
	}
	return invalid
}

// TaxRateErrors is ValidateTaxRates with item positions attached.
func (c *Calculator) TaxRateErrors() []ValidationError {
	var errs []ValidationError
	for i, item := range c.items {
		if !validRate(item.TaxRate) {
			errs = append(errs, ValidationError{
				Index:       i,
				Description: item.Description,
				TaxRate:     item.TaxRate,
			})
		}
	}
	return errs
}

// NaN fails both comparisons and is reported.
func validRate(r float64) bool {
	return r >= 0 && r <= 1
}
