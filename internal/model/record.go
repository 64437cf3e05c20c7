package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// NotApplicable is how an undefined Metric is rendered.
const NotApplicable = "N/A"

// FinancialRecord is one company-year observation.
type FinancialRecord struct {
	Company string  `json:"company" validate:"required"`
	Year    int     `json:"year"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Metric is a ratio that may be undefined (zero denominator, missing prior period).
type Metric struct {
	Value float64
	Valid bool
}

// MetricOf returns a defined Metric.
func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// NA returns the not-applicable Metric.
func NA() Metric {
	return Metric{}
}

// String renders the value with two decimals, or "N/A".
func (m Metric) String() string {
	if !m.Valid {
		return NotApplicable
	}
	return decimal.NewFromFloat(m.Value).StringFixedBank(2)
}

// MarshalJSON emits a number, or the string "N/A".
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(NotApplicable)
	}
	return []byte(strconv.FormatFloat(m.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or "N/A".
func (m *Metric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != NotApplicable {
			return fmt.Errorf("metric: unexpected string %q", s)
		}
		*m = NA()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = MetricOf(v)
	return nil
}

// CompanySummary is the aggregated view of one company.
type CompanySummary struct {
	Company         string  `json:"company"`
	AvgProfit       float64 `json:"avg_profit"`
	YoYGrowthPct    Metric  `json:"yoy_growth_pct"`
	ProfitMarginPct Metric  `json:"profit_margin_pct"`
}
