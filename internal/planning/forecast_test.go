package planning

import (
	"errors"
	"testing"

	"finplan/internal/core"
)

func TestForecastPerfectlyLinear(t *testing.T) {
	records := []core.MonthlyRecord{
		record("2026-01", "0", map[string]string{"all": "100"}),
		record("2026-02", "0", map[string]string{"all": "200"}),
		record("2026-03", "0", map[string]string{"all": "300"}),
	}
	points, err := Forecast(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("len = %d, want 2", len(points))
	}
	if points[0].Index != 3 || points[1].Index != 4 {
		t.Fatalf("indices = %d, %d, want 3, 4", points[0].Index, points[1].Index)
	}
	if !points[0].Projected.Equal(dec("400")) {
		t.Fatalf("projection[0] = %s, want 400", points[0].Projected)
	}
	if !points[1].Projected.Equal(dec("500")) {
		t.Fatalf("projection[1] = %s, want 500", points[1].Projected)
	}
}

func TestForecastDeterministic(t *testing.T) {
	records := []core.MonthlyRecord{
		record("2026-01", "0", map[string]string{"a": "120.50", "b": "30"}),
		record("2026-02", "0", map[string]string{"a": "131.25"}),
		record("2026-03", "0", map[string]string{"a": "97.10", "b": "55.40"}),
		record("2026-04", "0", map[string]string{"a": "142"}),
	}
	first, err := Forecast(records, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Forecast(records, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 6 || len(second) != 6 {
		t.Fatalf("lengths = %d, %d, want 6", len(first), len(second))
	}
	for i := range first {
		if first[i].Index != second[i].Index || !first[i].Projected.Equal(second[i].Projected) {
			t.Fatalf("point %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

// A strongly declining trend projects below zero; that is expected
// linear extrapolation, not a bug.
func TestForecastDecliningTrendGoesNegative(t *testing.T) {
	records := []core.MonthlyRecord{
		record("2026-01", "0", map[string]string{"all": "300"}),
		record("2026-02", "0", map[string]string{"all": "150"}),
		record("2026-03", "0", map[string]string{"all": "0"}),
	}
	points, err := Forecast(records, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !points[0].Projected.Equal(dec("-150")) {
		t.Fatalf("projection = %s, want -150", points[0].Projected)
	}
}

func TestForecastInsufficientData(t *testing.T) {
	_, err := Forecast(nil, 3)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("empty: expected ErrInsufficientData, got %v", err)
	}

	one := []core.MonthlyRecord{record("2026-01", "0", map[string]string{"all": "100"})}
	_, err = Forecast(one, 3)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("single record: expected ErrInsufficientData, got %v", err)
	}
}

func TestForecastInvalidHorizon(t *testing.T) {
	records := []core.MonthlyRecord{
		record("2026-01", "0", map[string]string{"all": "100"}),
		record("2026-02", "0", map[string]string{"all": "200"}),
	}
	for _, horizon := range []int{0, -1} {
		if _, err := Forecast(records, horizon); !errors.Is(err, core.ErrInvalidHorizon) {
			t.Fatalf("horizon %d: expected ErrInvalidHorizon, got %v", horizon, err)
		}
	}
}
