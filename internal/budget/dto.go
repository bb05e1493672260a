package budget

import (
	"github.com/shopspring/decimal"
)

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// MonthBudget is one calendar month's total.
type MonthBudget struct {
	Month      string          `json:"month"`
	MonthTotal decimal.Decimal `json:"month_total"`
}

// AmbassadorBudget is one ambassador's share of the year, with its own
// 12-month breakdown.
type AmbassadorBudget struct {
	AmbassadorName          string          `json:"ambassador_name"`
	AmbassadorYearTotal     decimal.Decimal `json:"ambassador_year_total"`
	AmbassadorMonthsBudgets []MonthBudget   `json:"ambassador_months_budgets"`
}

// YearReport is the three-level budget breakdown. A nil report means an
// empty result (zero total, or a malformed year) and serializes as [].
type YearReport struct {
	Year        string             `json:"year"`
	YearTotal   decimal.Decimal    `json:"year_total"`
	Months      []MonthBudget      `json:"months"`
	Ambassadors []AmbassadorBudget `json:"ambassadors"`
}

func monthsView(totals [12]decimal.Decimal) []MonthBudget {
	months := make([]MonthBudget, 0, 12)
	for i, name := range monthNames {
		months = append(months, MonthBudget{Month: name, MonthTotal: totals[i]})
	}
	return months
}
