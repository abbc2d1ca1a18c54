package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowSummary aggregates the historical records into averages. The
// savings capacity may be negative when spending exceeds income; it is
// reported as-is, never clamped.
type CashFlowSummary struct {
	Months           int                        `json:"months"`
	AverageIncome    decimal.Decimal            `json:"average_income"`
	AverageExpense   decimal.Decimal            `json:"average_expense"`
	CategoryAverages map[string]decimal.Decimal `json:"category_averages"`
	SavingsCapacity  decimal.Decimal            `json:"savings_capacity"`
}

// ForecastPoint is one projected month. Index continues the historical
// time index, so the first projection of an n-month history has index n.
// Projections follow the fitted line and may be negative for declining
// trends.
type ForecastPoint struct {
	Index     int             `json:"index"`
	Projected decimal.Decimal `json:"projected_expense"`
}

// GoalPlan is the funding plan for one upcoming expense.
type GoalPlan struct {
	Name     string          `json:"name"`
	Priority Priority        `json:"priority"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`

	// MonthsRemaining is floored at 1: a goal due today or in the past
	// still gets one month, making the full amount due now.
	MonthsRemaining int `json:"months_remaining"`

	// AllocatedFromBalance is the part of the goal covered up front by
	// the starting balance; RemainingAmount is what must still be saved.
	AllocatedFromBalance decimal.Decimal `json:"allocated_from_balance"`
	RemainingAmount      decimal.Decimal `json:"remaining_amount"`

	RequiredMonthly decimal.Decimal `json:"required_monthly"`

	// ReadinessRatio estimates how much of the remaining amount the
	// current savings capacity can cover before the due date, capped at 1.
	ReadinessRatio decimal.Decimal `json:"readiness_ratio"`
}

// RecommendationCode identifies a triggered guidance rule. Codes are
// stable; the message wording is presentation and may change.
type RecommendationCode string

const (
	RecNoIncome           RecommendationCode = "no_income"
	RecOverspending       RecommendationCode = "overspending"
	RecGoalDueNow         RecommendationCode = "goal_due_now"
	RecShortfall          RecommendationCode = "shortfall"
	RecSurplus            RecommendationCode = "surplus"
	RecLowSavingsRate     RecommendationCode = "low_savings_rate"
	RecHealthySavingsRate RecommendationCode = "healthy_savings_rate"
)

// Recommendation is one piece of rule-derived guidance.
type Recommendation struct {
	Code    RecommendationCode `json:"code"`
	Message string             `json:"message"`
}

// PlanResult is the goal planner's output. Shortfall is total required
// monthly saving minus savings capacity: positive means a deficit,
// negative a surplus; it is reported verbatim. SavingsRate is null when
// average income is zero (the rate is undefined, not an error).
type PlanResult struct {
	Goals                []GoalPlan          `json:"goals"`
	TotalRequiredMonthly decimal.Decimal     `json:"total_required_monthly"`
	Shortfall            decimal.Decimal     `json:"shortfall"`
	SavingsRate          decimal.NullDecimal `json:"savings_rate"`
	Recommendations      []Recommendation    `json:"recommendations"`
}

// AnalysisResult bundles one full analysis run. It is rebuilt from
// scratch on every invocation; nothing is cached or persisted.
type AnalysisResult struct {
	Summary       CashFlowSummary `json:"summary"`
	Forecast      []ForecastPoint `json:"forecast"`
	Plan          PlanResult      `json:"plan"`
	EmergencyFund decimal.Decimal `json:"emergency_fund"`
}
