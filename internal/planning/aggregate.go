// Package planning implements the planning engine: cash-flow aggregation,
// expense trend forecasting, and goal funding plans. Every function is a
// pure transform of its inputs; the current date is always an explicit
// parameter and nothing is cached between calls.
package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

// Summarize reduces the historical records to averages and the resulting
// savings capacity.
//
// Category averages always divide by the full record count: a category
// missing from a record counts as zero for that month. Adding a zero-value
// category entry to a record therefore changes no average.
func Summarize(records []core.MonthlyRecord) (core.CashFlowSummary, error) {
	if len(records) == 0 {
		return core.CashFlowSummary{}, fmt.Errorf("summarize: at least one monthly record is required: %w", core.ErrInsufficientData)
	}

	n := decimal.NewFromInt(int64(len(records)))
	incomeSum := decimal.Zero
	expenseSum := decimal.Zero
	categorySums := make(map[string]decimal.Decimal)

	for _, r := range records {
		incomeSum = incomeSum.Add(r.Income)
		expenseSum = expenseSum.Add(r.TotalExpenses())
		for name, amount := range r.Expenses {
			categorySums[name] = categorySums[name].Add(amount)
		}
	}

	categoryAverages := make(map[string]decimal.Decimal, len(categorySums))
	for name, sum := range categorySums {
		categoryAverages[name] = sum.Div(n)
	}

	averageIncome := incomeSum.Div(n)
	averageExpense := expenseSum.Div(n)

	return core.CashFlowSummary{
		Months:           len(records),
		AverageIncome:    averageIncome,
		AverageExpense:   averageExpense,
		CategoryAverages: categoryAverages,
		// May be negative; the planner reports overspending rather than
		// clamping it away.
		SavingsCapacity: averageIncome.Sub(averageExpense),
	}, nil
}

// EmergencyFund returns the recommended reserve: the average monthly
// expense times the configured number of months. Negative inputs are
// treated as zero.
func EmergencyFund(averageExpense decimal.Decimal, months int) decimal.Decimal {
	if averageExpense.IsNegative() {
		averageExpense = decimal.Zero
	}
	if months < 0 {
		months = 0
	}
	return averageExpense.Mul(decimal.NewFromInt(int64(months)))
}
