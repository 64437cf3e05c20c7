package records

import "github.com/cleared-dev/finsum/internal/model"

// SampleRecords returns the records written by `finsum init`.
func SampleRecords() []model.FinancialRecord {
	return []model.FinancialRecord{
		{Company: "ACME SRL", Year: 2022, Revenue: 100000, Profit: 12000},
		{Company: "ACME SRL", Year: 2023, Revenue: 125000, Profit: 15000},
		{Company: "BETA SRL", Year: 2022, Revenue: 200000, Profit: 50000},
		{Company: "BETA SRL", Year: 2023, Revenue: 210000, Profit: 42000},
		{Company: "GAMMA SRL", Year: 2023, Revenue: 40000, Profit: -4000},
	}
}
