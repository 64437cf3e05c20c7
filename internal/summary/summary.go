// Package summary groups per-year company records and derives trend metrics.
package summary

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/finsum/internal/model"
)

// Order selects the order in which companies appear in the output.
type Order string

const (
	// OrderFirstSeen lists companies in the order they first appear in the input.
	OrderFirstSeen Order = "first-seen"
	// OrderAlphabetical lists companies sorted by name.
	OrderAlphabetical Order = "alphabetical"
)

// ParseOrder validates an Order name. The empty string means OrderFirstSeen.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderFirstSeen:
		return OrderFirstSeen, nil
	case OrderAlphabetical:
		return OrderAlphabetical, nil
	default:
		return "", fmt.Errorf("unknown order %q (want %s or %s)", s, OrderFirstSeen, OrderAlphabetical)
	}
}

// Options controls SummarizeWith.
type Options struct {
	// MinRevenue drops every company whose best year stays below it.
	MinRevenue float64
	Order      Order
}

// Summarize is SummarizeWith in first-seen order.
func Summarize(records []model.FinancialRecord, minRevenue float64) ([]model.CompanySummary, error) {
	return SummarizeWith(records, Options{MinRevenue: minRevenue})
}

// SummarizeWith returns one summary per company that reaches opts.MinRevenue
// in at least one year. Within a company, rows are stably sorted by year, so
// of two rows with the same year the one later in the input counts as later.
// records is not modified.
func SummarizeWith(records []model.FinancialRecord, opts Options) ([]model.CompanySummary, error) {
	for i, r := range records {
		if err := checkRecord(i, r); err != nil {
			return nil, err
		}
	}

	groups := make(map[string][]model.FinancialRecord)
	var groupOrder []string
	for _, r := range records {
		if _, seen := groups[r.Company]; !seen {
			groupOrder = append(groupOrder, r.Company)
		}
		groups[r.Company] = append(groups[r.Company], r)
	}
	if opts.Order == OrderAlphabetical {
		slices.Sort(groupOrder)
	}

	var summaries []model.CompanySummary
	for _, company := range groupOrder {
		rows := groups[company]
		slices.SortStableFunc(rows, func(a, b model.FinancialRecord) int {
			return cmp.Compare(a.Year, b.Year)
		})
		if maxRevenue(rows) < opts.MinRevenue {
			continue
		}
		summaries = append(summaries, summarizeCompany(company, rows))
	}
	return summaries, nil
}

// summarizeCompany expects rows sorted by year and non-empty.
func summarizeCompany(company string, rows []model.FinancialRecord) model.CompanySummary {
	var total float64
	for _, r := range rows {
		total += r.Profit
	}
	latest := rows[len(rows)-1]

	yoy := model.NA()
	if len(rows) >= 2 {
		prev := rows[len(rows)-2]
		yoy = percent(latest.Revenue-prev.Revenue, prev.Revenue)
	}

	return model.CompanySummary{
		Company:         company,
		AvgProfit:       round2(total / float64(len(rows))),
		YoYGrowthPct:    yoy,
		ProfitMarginPct: percent(latest.Profit, latest.Revenue),
	}
}

// percent returns num/den*100 rounded to 2 places, or N/A when den is zero.
func percent(num, den float64) model.Metric {
	if den == 0 {
		return model.NA()
	}
	return model.MetricOf(round2(num / den * 100))
}

// round2 rounds half to even at two decimals, working on the shortest decimal
// representation of v so that 2.675 rounds as written rather than as stored.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

func maxRevenue(rows []model.FinancialRecord) float64 {
	m := math.Inf(-1)
	for _, r := range rows {
		m = max(m, r.Revenue)
	}
	return m
}

// checkRecord treats NaN as an absent value, matching how the CSV loader marks
// unparseable cells.
func checkRecord(i int, r model.FinancialRecord) error {
	if err := model.Require("record", i, r); err != nil {
		return err
	}
	switch {
	case math.IsNaN(r.Revenue) || math.IsInf(r.Revenue, 0):
		return &model.MissingFieldError{Entity: "record", Index: i, Field: "revenue"}
	case math.IsNaN(r.Profit) || math.IsInf(r.Profit, 0):
		return &model.MissingFieldError{Entity: "record", Index: i, Field: "profit"}
	}
	return nil
}
