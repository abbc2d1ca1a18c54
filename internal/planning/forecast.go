package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finplan/internal/core"
)

// Forecast fits an ordinary least squares line over the historical total
// expenses (time index 0..n-1) and projects the next horizon months at
// indices n..n+horizon-1.
//
// At least two records are required to fit a trend; a single record is
// not flattened into a constant projection, it is an error. Projections
// follow the line without clamping, so a strongly declining history can
// legitimately project negative values. Identical input always produces
// identical output.
func Forecast(records []core.MonthlyRecord, horizon int) ([]core.ForecastPoint, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("forecast: horizon %d: %w", horizon, core.ErrInvalidHorizon)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("forecast: need at least 2 records, have %d: %w", len(records), core.ErrInsufficientData)
	}

	slope, intercept, err := fitLine(records)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	points := make([]core.ForecastPoint, 0, horizon)
	for step := 0; step < horizon; step++ {
		index := len(records) + step
		projected := intercept + slope*float64(index)
		points = append(points, core.ForecastPoint{
			Index:     index,
			Projected: decimal.NewFromFloat(projected),
		})
	}
	return points, nil
}

// fitLine computes the closed-form least-squares slope and intercept for
// y = total expense over x = 0, 1, 2, ... Amounts are converted to
// float64 for the fit; the fitted line is an estimate, not money.
func fitLine(records []core.MonthlyRecord) (slope, intercept float64, err error) {
	n := float64(len(records))
	var sumX, sumY, sumXY, sumX2 float64
	for i, r := range records {
		x := float64(i)
		y, _ := r.TotalExpenses().Float64()
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	// Cannot happen with distinct indices 0..n-1, but a singular system
	// must never silently produce NaN projections.
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, core.ErrDegenerateInput
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}
