package planning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

// Plan computes the monthly saving required to fund each goal and compares
// the total against the savings capacity from the summary.
//
// Goals are processed in a fixed order: priority rank, then due date, then
// name. A non-negative starting balance is allocated to goals in that
// order before the monthly requirement is computed, so high-priority
// near-term goals are covered first. With a zero balance the required
// contribution is simply amount / months remaining.
//
// The months-remaining divisor is floored at 1: a goal due today or
// already past still gets one month, meaning its full remaining amount is
// due this month. The savings rate is reported as null, not an error,
// when there is no income to divide by.
func Plan(goals []core.UpcomingExpense, today time.Time, summary core.CashFlowSummary, startingBalance decimal.Decimal, thresholds Thresholds) core.PlanResult {
	ordered := make([]core.UpcomingExpense, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].EffectivePriority().Rank(), ordered[j].EffectivePriority().Rank()
		if ri != rj {
			return ri < rj
		}
		if !ordered[i].DueDate.Equal(ordered[j].DueDate) {
			return ordered[i].DueDate.Before(ordered[j].DueDate)
		}
		return ordered[i].Name < ordered[j].Name
	})

	balance := startingBalance
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	plans := make([]core.GoalPlan, 0, len(ordered))
	totalRequired := decimal.Zero
	for _, g := range ordered {
		months := MonthsUntil(today, g.DueDate)
		monthsDec := decimal.NewFromInt(int64(months))

		allocated := decimal.Min(balance, g.Amount)
		balance = balance.Sub(allocated)
		remaining := g.Amount.Sub(allocated)

		required := remaining.Div(monthsDec)
		totalRequired = totalRequired.Add(required)

		plans = append(plans, core.GoalPlan{
			Name:                 g.Name,
			Priority:             g.EffectivePriority(),
			DueDate:              g.DueDate,
			Amount:               g.Amount,
			MonthsRemaining:      months,
			AllocatedFromBalance: allocated,
			RemainingAmount:      remaining,
			RequiredMonthly:      required,
			ReadinessRatio:       readinessRatio(summary.SavingsCapacity, monthsDec, remaining),
		})
	}

	result := core.PlanResult{
		Goals:                plans,
		TotalRequiredMonthly: totalRequired,
		Shortfall:            totalRequired.Sub(summary.SavingsCapacity),
	}
	if summary.AverageIncome.IsPositive() {
		result.SavingsRate = decimal.NullDecimal{
			Decimal: summary.SavingsCapacity.Div(summary.AverageIncome),
			Valid:   true,
		}
	}
	result.Recommendations = Recommend(summary, result, today, thresholds)
	return result
}

// MonthsUntil returns the number of months available to save before the
// due date, as a ceiling over calendar months: a due date exactly k
// calendar months out yields k, one day later yields k+1. The result is
// floored at 1 for due dates on or before today.
func MonthsUntil(today, due time.Time) int {
	months := (due.Year()-today.Year())*12 + int(due.Month()) - int(today.Month())
	if due.Day() > today.Day() {
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}

// readinessRatio estimates what fraction of the remaining goal the current
// savings capacity can cover before the due date, capped at 1. A fully
// covered goal is ready regardless of capacity.
func readinessRatio(capacity, months, remaining decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if !remaining.IsPositive() {
		return one
	}
	if !capacity.IsPositive() {
		return decimal.Zero
	}
	ratio := capacity.Mul(months).Div(remaining)
	return decimal.Min(ratio, one)
}
