// Request payload types and their conversion into domain values. Payloads
// carry the wire-level validation tags; domain rules (non-negative
// amounts and so on) are still enforced by core validation downstream.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
	"finplan/internal/services"
)

const dateLayout = "2006-01-02"

type recordPayload struct {
	Month    string                     `json:"month" validate:"required"`
	Income   decimal.Decimal            `json:"income"`
	Expenses map[string]decimal.Decimal `json:"expenses"`
}

type goalPayload struct {
	Name     string          `json:"name" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Priority string          `json:"priority" validate:"omitempty,oneof=high medium low"`
}

type analyzeRequest struct {
	Records        []recordPayload `json:"records" validate:"required,min=1,dive"`
	Goals          []goalPayload   `json:"goals" validate:"omitempty,dive"`
	HorizonMonths  int             `json:"horizon_months" validate:"omitempty,min=1,max=120"`
	Today          string          `json:"today" validate:"omitempty,datetime=2006-01-02"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type createScenarioRequest struct {
	Name           string          `json:"name" validate:"required,max=120"`
	Demo           bool            `json:"demo"`
	Records        []recordPayload `json:"records" validate:"omitempty,dive"`
	Goals          []goalPayload   `json:"goals" validate:"omitempty,dive"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type setRecordsRequest struct {
	Records []recordPayload `json:"records" validate:"required,min=1,dive"`
}

type setGoalsRequest struct {
	Goals []goalPayload `json:"goals" validate:"omitempty,dive"`
}

type setBalanceRequest struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type scenarioAnalyzeRequest struct {
	HorizonMonths int    `json:"horizon_months" validate:"omitempty,min=1,max=120"`
	Today         string `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

// decodeAndValidate parses the JSON body into dst and runs the validator.
// Unknown fields are rejected so typos surface instead of being ignored.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("validate request body: %w", err)
	}
	return nil
}

func toRecords(payloads []recordPayload) []core.MonthlyRecord {
	records := make([]core.MonthlyRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, core.MonthlyRecord{
			Month:    p.Month,
			Income:   p.Income,
			Expenses: p.Expenses,
		})
	}
	return records
}

func toGoals(payloads []goalPayload) ([]core.UpcomingExpense, error) {
	goals := make([]core.UpcomingExpense, 0, len(payloads))
	for _, p := range payloads {
		due, err := time.ParseInLocation(dateLayout, p.DueDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("goal %q: parse due date: %w", p.Name, err)
		}
		goals = append(goals, core.UpcomingExpense{
			Name:     p.Name,
			Amount:   p.Amount,
			DueDate:  due,
			Priority: core.Priority(p.Priority),
		})
	}
	return goals, nil
}

// parseToday resolves the analysis date: the explicit request value when
// present, the server clock otherwise. The clock enters here and nowhere
// below, so everything under the shell stays reproducible.
func (s *Server) parseToday(value string) (time.Time, error) {
	if value == "" {
		return s.now(), nil
	}
	return time.ParseInLocation(dateLayout, value, time.UTC)
}

func (s *Server) toAnalysisInput(req analyzeRequest) (services.AnalysisInput, error) {
	goals, err := toGoals(req.Goals)
	if err != nil {
		return services.AnalysisInput{}, err
	}
	today, err := s.parseToday(req.Today)
	if err != nil {
		return services.AnalysisInput{}, err
	}
	horizon := req.HorizonMonths
	if horizon == 0 {
		horizon = s.defaultHorizon
	}
	return services.AnalysisInput{
		Records:        toRecords(req.Records),
		Goals:          goals,
		HorizonMonths:  horizon,
		Today:          today,
		CurrentBalance: req.CurrentBalance,
	}, nil
}
