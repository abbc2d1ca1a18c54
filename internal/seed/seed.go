// Package seed generates the demo scenario: a few months of plausible
// history plus a couple of goals. Generation is seeded, so the same seed
// always produces the same scenario.
package seed

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

const historyMonths = 6

// Demo categories mirror a typical starter breakdown.
var categories = []struct {
	name string
	base float64
}{
	{"rent", 1500},
	{"groceries", 500},
	{"dining out", 250},
	{"transport", 120},
	{"streaming services", 60},
}

// Records builds historyMonths of monthly records ending with the month
// of now, with a mild upward spending trend and seeded jitter.
func Records(seedValue uint64, now time.Time) []core.MonthlyRecord {
	faker := gofakeit.New(seedValue)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(historyMonths - 1), 0)
	income := decimal.NewFromFloat(faker.Float64Range(2800, 4200)).Round(2)

	records := make([]core.MonthlyRecord, 0, historyMonths)
	for i := 0; i < historyMonths; i++ {
		month := start.AddDate(0, i, 0)
		expenses := make(map[string]decimal.Decimal, len(categories))
		trend := 0.96 + float64(i)*0.015
		for _, cat := range categories {
			jitter := faker.Float64Range(0.92, 1.08)
			expenses[cat.name] = decimal.NewFromFloat(cat.base * trend * jitter).Round(2)
		}
		records = append(records, core.MonthlyRecord{
			Month:    month.Format("2006-01"),
			Income:   income,
			Expenses: expenses,
		})
	}
	return records
}

// Goals builds two demo goals relative to now.
func Goals(seedValue uint64, now time.Time) []core.UpcomingExpense {
	faker := gofakeit.New(seedValue + 1)
	return []core.UpcomingExpense{
		{
			Name:     "Vacation",
			Amount:   decimal.NewFromFloat(faker.Float64Range(900, 1600)).Round(2),
			DueDate:  now.AddDate(0, 6, 0),
			Priority: core.PriorityMedium,
		},
		{
			Name:     "New laptop",
			Amount:   decimal.NewFromFloat(faker.Float64Range(1200, 2200)).Round(2),
			DueDate:  now.AddDate(0, 10, 0),
			Priority: core.PriorityHigh,
		},
	}
}
