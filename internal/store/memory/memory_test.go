package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

func sampleRecords() []core.MonthlyRecord {
	return []core.MonthlyRecord{
		{
			Month:  "2026-01",
			Income: decimal.NewFromInt(3000),
			Expenses: map[string]decimal.Decimal{
				"rent": decimal.NewFromInt(1000),
			},
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, "baseline", sampleRecords(), nil, decimal.Zero)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps not initialized: %v %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "baseline" || len(got.Records) != 1 {
		t.Fatalf("got = %+v", got)
	}
}

func TestGetUnknown(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, "plan", nil, nil, decimal.Zero)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	goals := []core.UpcomingExpense{{
		Name:    "Vacation",
		Amount:  decimal.NewFromInt(1200),
		DueDate: time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC),
	}}
	updated, err := s.SetGoals(ctx, created.ID, goals)
	if err != nil {
		t.Fatalf("set goals: %v", err)
	}
	if len(updated.Goals) != 1 || updated.Goals[0].Name != "Vacation" {
		t.Fatalf("goals = %+v", updated.Goals)
	}

	if _, err := s.SetRecords(ctx, created.ID, sampleRecords()); err != nil {
		t.Fatalf("set records: %v", err)
	}
	if _, err := s.SetBalance(ctx, created.ID, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("set balance: %v", err)
	}
	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CurrentBalance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance = %s", got.CurrentBalance)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { ts = ts.Add(time.Minute); return ts }

	first, _ := s.Create(ctx, "first", nil, nil, decimal.Zero)
	second, _ := s.Create(ctx, "second", nil, nil, decimal.Zero)

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("list order wrong: %+v", list)
	}
}

// The store must hand out copies: mutating returned or input data must not
// leak into stored state.
func TestCopyIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()

	records := sampleRecords()
	created, err := s.Create(ctx, "iso", records, nil, decimal.Zero)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutate the caller's slice after create.
	records[0].Expenses["rent"] = decimal.NewFromInt(9999)

	got, _ := s.Get(ctx, created.ID)
	if !got.Records[0].Expenses["rent"].Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("input mutation leaked into store: %s", got.Records[0].Expenses["rent"])
	}

	// Mutate a returned snapshot.
	got.Records[0].Expenses["rent"] = decimal.NewFromInt(1)
	again, _ := s.Get(ctx, created.ID)
	if !again.Records[0].Expenses["rent"].Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("snapshot mutation leaked into store: %s", again.Records[0].Expenses["rent"])
	}
}
