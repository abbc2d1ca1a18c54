// Package services orchestrates the planning engine for the shells (HTTP
// and CLI): input validation, the summarize/forecast/plan sequence, and
// instrumentation.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
	"finplan/internal/log"
	"finplan/internal/planning"
)

// AnalysisInput is the full input snapshot for one analysis run. Today is
// explicit so runs are reproducible; shells inject the clock.
type AnalysisInput struct {
	Records        []core.MonthlyRecord
	Goals          []core.UpcomingExpense
	HorizonMonths  int
	Today          time.Time
	CurrentBalance decimal.Decimal
}

// AnalysisService runs the planning engine over an input snapshot. The
// whole result is recomputed on every call; the service keeps no state
// between runs.
type AnalysisService struct {
	thresholds planning.Thresholds
	fundMonths int
	metrics    *Metrics
	logger     *log.Logger
}

func NewAnalysisService(thresholds planning.Thresholds, emergencyFundMonths int, metrics *Metrics, logger *log.Logger) *AnalysisService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &AnalysisService{
		thresholds: thresholds,
		fundMonths: emergencyFundMonths,
		metrics:    metrics,
		logger:     logger.WithComponent(log.ComponentAnalysis),
	}
}

// Analyze validates the input and runs summarize, forecast, and plan in
// sequence. On any error nothing partial is returned.
func (s *AnalysisService) Analyze(ctx context.Context, in AnalysisInput) (core.AnalysisResult, error) {
	start := time.Now()

	result, err := s.analyze(in)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveAnalysis("error", in.HorizonMonths, elapsed)
		s.logger.WarnContext(ctx, "Analysis failed",
			log.FieldError, err,
			log.FieldRecords, len(in.Records),
			log.FieldGoals, len(in.Goals),
			log.FieldHorizon, in.HorizonMonths)
		return core.AnalysisResult{}, err
	}

	s.metrics.ObserveAnalysis("ok", in.HorizonMonths, elapsed)
	s.logger.InfoContext(ctx, "Analysis completed",
		log.FieldRecords, len(in.Records),
		log.FieldGoals, len(in.Goals),
		log.FieldHorizon, in.HorizonMonths,
		log.FieldDuration, elapsed.Milliseconds(),
		"shortfall", result.Plan.Shortfall.StringFixed(2))
	return result, nil
}

func (s *AnalysisService) analyze(in AnalysisInput) (core.AnalysisResult, error) {
	if in.Today.IsZero() {
		return core.AnalysisResult{}, errors.New("analyze: today must be supplied")
	}
	for i, r := range in.Records {
		if err := r.Validate(); err != nil {
			return core.AnalysisResult{}, fmt.Errorf("analyze: record %d (%s): %w", i, r.Month, err)
		}
	}
	for i, g := range in.Goals {
		if err := g.Validate(); err != nil {
			return core.AnalysisResult{}, fmt.Errorf("analyze: goal %d (%s): %w", i, g.Name, err)
		}
	}

	summary, err := planning.Summarize(in.Records)
	if err != nil {
		return core.AnalysisResult{}, err
	}
	forecast, err := planning.Forecast(in.Records, in.HorizonMonths)
	if err != nil {
		return core.AnalysisResult{}, err
	}
	plan := planning.Plan(in.Goals, in.Today, summary, in.CurrentBalance, s.thresholds)

	return core.AnalysisResult{
		Summary:       summary,
		Forecast:      forecast,
		Plan:          plan,
		EmergencyFund: planning.EmergencyFund(summary.AverageExpense, s.fundMonths),
	}, nil
}
