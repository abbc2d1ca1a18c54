package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMonthlyRecordTotalExpenses(t *testing.T) {
	r := MonthlyRecord{
		Month:  "2026-01",
		Income: dec("3000"),
		Expenses: map[string]decimal.Decimal{
			"rent": dec("1000"),
			"food": dec("350.50"),
		},
	}
	if got := r.TotalExpenses(); !got.Equal(dec("1350.50")) {
		t.Fatalf("total = %s, want 1350.50", got)
	}
	if got := (MonthlyRecord{Month: "2026-01"}).TotalExpenses(); !got.IsZero() {
		t.Fatalf("empty total = %s, want 0", got)
	}
}

func TestMonthlyRecordValidate(t *testing.T) {
	cases := []struct {
		name string
		r    MonthlyRecord
		ok   bool
	}{
		{"valid", MonthlyRecord{Month: "2026-01", Income: dec("3000"), Expenses: map[string]decimal.Decimal{"rent": dec("1000")}}, true},
		{"zero income ok", MonthlyRecord{Month: "2026-01"}, true},
		{"empty label", MonthlyRecord{Month: "  ", Income: dec("1")}, false},
		{"negative income", MonthlyRecord{Month: "2026-01", Income: dec("-1")}, false},
		{"negative category", MonthlyRecord{Month: "2026-01", Expenses: map[string]decimal.Decimal{"rent": dec("-5")}}, false},
		{"blank category", MonthlyRecord{Month: "2026-01", Expenses: map[string]decimal.Decimal{" ": dec("5")}}, false},
	}
	for _, tc := range cases {
		err := tc.r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestUpcomingExpenseValidate(t *testing.T) {
	due := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	good := UpcomingExpense{Name: "Vacation", Amount: dec("1200"), DueDate: due}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []UpcomingExpense{
		{Name: "", Amount: dec("1"), DueDate: due},
		{Name: "x", Amount: dec("0"), DueDate: due},
		{Name: "x", Amount: dec("-1"), DueDate: due},
		{Name: "x", Amount: dec("1")}, // zero due date
		{Name: "x", Amount: dec("1"), DueDate: due, Priority: "urgent"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() || PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Fatalf("priority ranks out of order")
	}
	if Priority("whatever").Rank() <= PriorityLow.Rank() {
		t.Fatalf("unknown priority should rank last")
	}
	if got := (UpcomingExpense{}).EffectivePriority(); got != PriorityMedium {
		t.Fatalf("default priority = %s, want medium", got)
	}
}
