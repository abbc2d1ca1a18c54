// Package memory holds analysis scenarios in process memory. A scenario
// is the server-side copy of the inputs a client is editing: historical
// records, upcoming goals, and an optional starting balance. Nothing
// survives a restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

// ErrNotFound is returned for unknown scenario IDs.
var ErrNotFound = errors.New("scenario not found")

// Scenario is one named set of planner inputs.
type Scenario struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Records        []core.MonthlyRecord   `json:"records"`
	Goals          []core.UpcomingExpense `json:"goals"`
	CurrentBalance decimal.Decimal        `json:"current_balance"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Store is a mutex-guarded map of scenarios. All methods copy slices on
// the way in and out so callers can never mutate stored state.
type Store struct {
	mu        sync.Mutex
	scenarios map[string]*Scenario
	now       func() time.Time
}

func New() *Store {
	return &Store{
		scenarios: make(map[string]*Scenario),
		now:       time.Now,
	}
}

// Create registers a new scenario and returns it with its assigned ID.
func (s *Store) Create(_ context.Context, name string, records []core.MonthlyRecord, goals []core.UpcomingExpense, balance decimal.Decimal) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sc := &Scenario{
		ID:             uuid.NewString(),
		Name:           name,
		Records:        copyRecords(records),
		Goals:          copyGoals(goals),
		CurrentBalance: balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.scenarios[sc.ID] = sc
	return snapshot(sc), nil
}

// Get returns a copy of the scenario with the given ID.
func (s *Store) Get(_ context.Context, id string) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	return snapshot(sc), nil
}

// List returns all scenarios ordered by creation time, then ID.
func (s *Store) List(_ context.Context) ([]Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		out = append(out, snapshot(sc))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SetRecords replaces the scenario's historical records.
func (s *Store) SetRecords(_ context.Context, id string, records []core.MonthlyRecord) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	sc.Records = copyRecords(records)
	sc.UpdatedAt = s.now()
	return snapshot(sc), nil
}

// SetGoals replaces the scenario's upcoming goals.
func (s *Store) SetGoals(_ context.Context, id string, goals []core.UpcomingExpense) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	sc.Goals = copyGoals(goals)
	sc.UpdatedAt = s.now()
	return snapshot(sc), nil
}

// SetBalance replaces the scenario's starting balance.
func (s *Store) SetBalance(_ context.Context, id string, balance decimal.Decimal) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenarios[id]
	if !ok {
		return Scenario{}, ErrNotFound
	}
	sc.CurrentBalance = balance
	sc.UpdatedAt = s.now()
	return snapshot(sc), nil
}

// Delete removes the scenario with the given ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[id]; !ok {
		return ErrNotFound
	}
	delete(s.scenarios, id)
	return nil
}

func snapshot(sc *Scenario) Scenario {
	out := *sc
	out.Records = copyRecords(sc.Records)
	out.Goals = copyGoals(sc.Goals)
	return out
}

func copyRecords(records []core.MonthlyRecord) []core.MonthlyRecord {
	out := make([]core.MonthlyRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Expenses == nil {
			continue
		}
		expenses := make(map[string]decimal.Decimal, len(out[i].Expenses))
		for k, v := range out[i].Expenses {
			expenses[k] = v
		}
		out[i].Expenses = expenses
	}
	return out
}

func copyGoals(goals []core.UpcomingExpense) []core.UpcomingExpense {
	out := make([]core.UpcomingExpense, len(goals))
	copy(out, goals)
	return out
}
