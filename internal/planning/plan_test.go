package planning

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

var today = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

func goal(name, amount string, due time.Time, p core.Priority) core.UpcomingExpense {
	return core.UpcomingExpense{Name: name, Amount: dec(amount), DueDate: due, Priority: p}
}

func summaryWith(income, expense string) core.CashFlowSummary {
	return core.CashFlowSummary{
		AverageIncome:   dec(income),
		AverageExpense:  dec(expense),
		SavingsCapacity: dec(income).Sub(dec(expense)),
	}
}

func TestMonthsUntil(t *testing.T) {
	cases := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due today", today, 1},
		{"past due", today.AddDate(0, -2, 0), 1},
		{"tomorrow", today.AddDate(0, 0, 1), 1},
		{"exactly six months", today.AddDate(0, 6, 0), 6},
		{"six months and a day", today.AddDate(0, 6, 1), 7},
		{"just under six months", today.AddDate(0, 6, -5), 6},
		{"one year", today.AddDate(1, 0, 0), 12},
	}
	for _, tc := range cases {
		if got := MonthsUntil(today, tc.due); got != tc.want {
			t.Fatalf("%s: MonthsUntil = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPlanRequiredContributions(t *testing.T) {
	goals := []core.UpcomingExpense{
		goal("Car insurance", "1200", today.AddDate(1, 0, 0), ""),
		goal("Flight", "600", today.AddDate(0, 6, 0), ""),
	}
	res := Plan(goals, today, summaryWith("3000", "2000"), decimal.Zero, DefaultThresholds())

	if len(res.Goals) != 2 {
		t.Fatalf("goals = %d, want 2", len(res.Goals))
	}
	for _, g := range res.Goals {
		if !g.RequiredMonthly.Equal(dec("100")) {
			t.Fatalf("goal %q required = %s, want 100", g.Name, g.RequiredMonthly)
		}
	}
	if !res.TotalRequiredMonthly.Equal(dec("200")) {
		t.Fatalf("total required = %s, want 200", res.TotalRequiredMonthly)
	}
	// capacity 1000 > requirement 200: negative shortfall, verbatim
	if !res.Shortfall.Equal(dec("-800")) {
		t.Fatalf("shortfall = %s, want -800", res.Shortfall)
	}
}

func TestPlanPastDueGoal(t *testing.T) {
	goals := []core.UpcomingExpense{goal("Overdue bill", "450", today.AddDate(0, -1, 0), "")}
	res := Plan(goals, today, summaryWith("1000", "900"), decimal.Zero, DefaultThresholds())

	g := res.Goals[0]
	if g.MonthsRemaining != 1 {
		t.Fatalf("months remaining = %d, want 1", g.MonthsRemaining)
	}
	if !g.RequiredMonthly.Equal(dec("450")) {
		t.Fatalf("required = %s, want full amount 450", g.RequiredMonthly)
	}
}

func TestPlanSavingsRateUndefinedWithoutIncome(t *testing.T) {
	res := Plan(nil, today, summaryWith("0", "100"), decimal.Zero, DefaultThresholds())
	if res.SavingsRate.Valid {
		t.Fatalf("savings rate should be undefined, got %s", res.SavingsRate.Decimal)
	}
}

func TestPlanSavingsRate(t *testing.T) {
	res := Plan(nil, today, summaryWith("3000", "1350"), decimal.Zero, DefaultThresholds())
	if !res.SavingsRate.Valid {
		t.Fatalf("savings rate should be defined")
	}
	if !res.SavingsRate.Decimal.Equal(dec("0.55")) {
		t.Fatalf("savings rate = %s, want 0.55", res.SavingsRate.Decimal)
	}
}

func TestPlanDeterministicOrdering(t *testing.T) {
	due := today.AddDate(0, 4, 0)
	goals := []core.UpcomingExpense{
		goal("Zebra fund", "100", due, core.PriorityLow),
		goal("Alpha fund", "100", due, core.PriorityLow),
		goal("Late but high", "100", today.AddDate(0, 9, 0), core.PriorityHigh),
		goal("Early medium", "100", today.AddDate(0, 1, 0), ""),
	}
	res := Plan(goals, today, summaryWith("2000", "1500"), decimal.Zero, DefaultThresholds())

	want := []string{"Late but high", "Early medium", "Alpha fund", "Zebra fund"}
	for i, name := range want {
		if res.Goals[i].Name != name {
			t.Fatalf("position %d = %q, want %q", i, res.Goals[i].Name, name)
		}
	}
}

func TestPlanBalanceAllocation(t *testing.T) {
	goals := []core.UpcomingExpense{
		goal("First", "300", today.AddDate(0, 3, 0), core.PriorityHigh),
		goal("Second", "600", today.AddDate(0, 6, 0), core.PriorityMedium),
	}
	res := Plan(goals, today, summaryWith("2000", "1500"), dec("500"), DefaultThresholds())

	first, second := res.Goals[0], res.Goals[1]
	if !first.AllocatedFromBalance.Equal(dec("300")) || !first.RemainingAmount.IsZero() {
		t.Fatalf("first allocation = %s remaining = %s", first.AllocatedFromBalance, first.RemainingAmount)
	}
	if !first.RequiredMonthly.IsZero() {
		t.Fatalf("first required = %s, want 0", first.RequiredMonthly)
	}
	if !first.ReadinessRatio.Equal(dec("1")) {
		t.Fatalf("covered goal readiness = %s, want 1", first.ReadinessRatio)
	}
	if !second.AllocatedFromBalance.Equal(dec("200")) || !second.RemainingAmount.Equal(dec("400")) {
		t.Fatalf("second allocation = %s remaining = %s", second.AllocatedFromBalance, second.RemainingAmount)
	}
	// 400 remaining over 6 months
	if !second.RequiredMonthly.Round(4).Equal(dec("66.6667")) {
		t.Fatalf("second required = %s", second.RequiredMonthly)
	}
}

func TestReadinessRatio(t *testing.T) {
	// capacity 500 over 2 months against remaining 2000 -> 0.5
	if got := readinessRatio(dec("500"), dec("2"), dec("2000")); !got.Equal(dec("0.5")) {
		t.Fatalf("ratio = %s, want 0.5", got)
	}
	// capped at 1
	if got := readinessRatio(dec("500"), dec("10"), dec("100")); !got.Equal(dec("1")) {
		t.Fatalf("ratio = %s, want 1", got)
	}
	// no capacity, something remaining -> 0
	if got := readinessRatio(dec("-10"), dec("5"), dec("100")); !got.IsZero() {
		t.Fatalf("ratio = %s, want 0", got)
	}
}

func TestPlanDoesNotMutateInput(t *testing.T) {
	goals := []core.UpcomingExpense{
		goal("B", "100", today.AddDate(0, 2, 0), core.PriorityLow),
		goal("A", "100", today.AddDate(0, 1, 0), core.PriorityHigh),
	}
	_ = Plan(goals, today, summaryWith("1000", "500"), decimal.Zero, DefaultThresholds())
	if goals[0].Name != "B" || goals[1].Name != "A" {
		t.Fatalf("caller slice was reordered: %q, %q", goals[0].Name, goals[1].Name)
	}
}
