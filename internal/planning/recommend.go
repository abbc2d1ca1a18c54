package planning

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

// Thresholds are the savings-rate boundaries that drive recommendations.
type Thresholds struct {
	// LowSavingsRate marks a rate below which a warning fires.
	LowSavingsRate decimal.Decimal
	// HealthySavingsRate marks a rate at or above which the plan is
	// considered comfortably on track.
	HealthySavingsRate decimal.Decimal
}

// DefaultThresholds returns the standard 10% / 20% boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowSavingsRate:     decimal.NewFromFloat(0.10),
		HealthySavingsRate: decimal.NewFromFloat(0.20),
	}
}

// Recommend derives guidance from the summary and plan. Rules fire in a
// fixed order and each at most once, so identical inputs always produce
// the same list:
//
//  1. no_income             average income <= 0
//  2. overspending          savings capacity < 0
//  3. goal_due_now          any goal due on or before today
//  4. shortfall             shortfall > 0
//  5. surplus               shortfall <= 0 and capacity > 0
//  6. low_savings_rate      0 <= rate < LowSavingsRate
//  7. healthy_savings_rate  rate >= HealthySavingsRate
func Recommend(summary core.CashFlowSummary, plan core.PlanResult, today time.Time, thresholds Thresholds) []core.Recommendation {
	var recs []core.Recommendation

	if !summary.AverageIncome.IsPositive() {
		recs = append(recs, core.Recommendation{
			Code:    core.RecNoIncome,
			Message: "No income recorded; the savings rate is undefined. Add income to your history to plan reliably.",
		})
	}

	topCategory, topAverage := largestCategory(summary.CategoryAverages)

	if summary.SavingsCapacity.IsNegative() {
		msg := fmt.Sprintf("Average spending exceeds average income by %s per month.", summary.SavingsCapacity.Neg().StringFixed(2))
		if topCategory != "" {
			msg += fmt.Sprintf(" The largest category is %q at %s on average.", topCategory, topAverage.StringFixed(2))
		}
		recs = append(recs, core.Recommendation{Code: core.RecOverspending, Message: msg})
	}

	for _, g := range plan.Goals {
		if !g.DueDate.After(today) {
			recs = append(recs, core.Recommendation{
				Code:    core.RecGoalDueNow,
				Message: fmt.Sprintf("Goal %q is due now; its full remaining amount of %s falls in the current month.", g.Name, g.RemainingAmount.StringFixed(2)),
			})
			break
		}
	}

	if plan.Shortfall.IsPositive() {
		msg := fmt.Sprintf("Funding all goals needs %s per month more than your savings capacity.", plan.Shortfall.StringFixed(2))
		if topCategory != "" {
			msg += fmt.Sprintf(" Consider trimming %q (average %s per month) or extending goal deadlines.", topCategory, topAverage.StringFixed(2))
		}
		recs = append(recs, core.Recommendation{Code: core.RecShortfall, Message: msg})
	} else if summary.SavingsCapacity.IsPositive() {
		recs = append(recs, core.Recommendation{
			Code:    core.RecSurplus,
			Message: fmt.Sprintf("Your savings capacity covers all goals with %s per month to spare.", plan.Shortfall.Neg().StringFixed(2)),
		})
	}

	if plan.SavingsRate.Valid {
		rate := plan.SavingsRate.Decimal
		switch {
		case !rate.IsNegative() && rate.LessThan(thresholds.LowSavingsRate):
			recs = append(recs, core.Recommendation{
				Code:    core.RecLowSavingsRate,
				Message: fmt.Sprintf("You retain only %s%% of your income; aim for at least %s%%.", rate.Mul(decimal.NewFromInt(100)).StringFixed(1), thresholds.LowSavingsRate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
			})
		case rate.GreaterThanOrEqual(thresholds.HealthySavingsRate):
			recs = append(recs, core.Recommendation{
				Code:    core.RecHealthySavingsRate,
				Message: fmt.Sprintf("You retain %s%% of your income, a healthy savings rate.", rate.Mul(decimal.NewFromInt(100)).StringFixed(1)),
			})
		}
	}

	return recs
}

// largestCategory returns the category with the highest average spend,
// breaking ties by name so the result is deterministic.
func largestCategory(averages map[string]decimal.Decimal) (string, decimal.Decimal) {
	var name string
	max := decimal.Zero
	for cat, avg := range averages {
		if avg.GreaterThan(max) || (avg.Equal(max) && name != "" && cat < name) {
			name = cat
			max = avg
		}
	}
	return name, max
}
