package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type (
	// Priority orders goals when a starting balance is allocated.
	Priority string

	// MonthlyRecord is one month of historical cash flow: the income
	// received and the spending broken down by category. Records are
	// immutable inputs; an analysis never mutates them.
	MonthlyRecord struct {
		Month    string                     `json:"month"`
		Income   decimal.Decimal            `json:"income"`
		Expenses map[string]decimal.Decimal `json:"expenses"`
	}

	// UpcomingExpense is a savings goal: an amount that must be available
	// by its due date.
	UpcomingExpense struct {
		Name     string          `json:"name"`
		Amount   decimal.Decimal `json:"amount"`
		DueDate  time.Time       `json:"due_date"`
		Priority Priority        `json:"priority"`
	}
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrInvalidHorizon   = errors.New("invalid forecast horizon")

	ErrEmptyMonthLabel = errors.New("empty month label")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category name")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeIncome  = errors.New("negative income")
	ErrInvalidDueDate  = errors.New("invalid due date")
)

// Rank returns the allocation order of a priority; lower ranks are funded
// first. Unknown values rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// TotalExpenses returns the sum of all category amounts for the month.
func (r MonthlyRecord) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range r.Expenses {
		total = total.Add(amount)
	}
	return total
}

func (r MonthlyRecord) Validate() error {
	if strings.TrimSpace(r.Month) == "" {
		return ErrEmptyMonthLabel
	}
	if r.Income.IsNegative() {
		return ErrNegativeIncome
	}
	for name, amount := range r.Expenses {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyCategory
		}
		if amount.IsNegative() {
			return ErrInvalidAmount
		}
	}
	return nil
}

func (e UpcomingExpense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.DueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if e.Priority != "" && !e.Priority.Valid() {
		return errors.New("invalid priority")
	}
	return nil
}

// EffectivePriority returns the goal's priority, defaulting to medium
// when none was supplied.
func (e UpcomingExpense) EffectivePriority() Priority {
	if e.Priority == "" {
		return PriorityMedium
	}
	return e.Priority
}
