package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transitpulse.org/internal/models"
)

func efficiencyRoute(fare float64) models.Route {
	return models.Route{
		ID:                 "r1",
		Name:               "Crosstown",
		Fare:               fare,
		OperatingStartHour: 6,
		OperatingEndHour:   22,
		IsActive:           true,
	}
}

func TestEfficiencyDefaultsWithNoReports(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(25))

	a := testAnalyzer(store)
	score, err := a.Efficiency(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, 50.0, score.Reliability)
	assert.Equal(t, 60.0, score.Speed)
	assert.Equal(t, 80.0, score.Safety)
	assert.Equal(t, 70.0, score.Comfort)
	assert.Equal(t, 100.0, score.Cost)
	// 16 operating hours * 2 = 32
	assert.Equal(t, 32.0, score.Frequency)
	assert.Zero(t, score.ReportCount)

	expected := 50*0.25 + 60*0.20 + 80*0.25 + 70*0.15 + 100*0.10 + 32*0.05
	assert.InDelta(t, expected, score.Overall, 1e-9)
}

func TestEfficiencyCostFactor(t *testing.T) {
	tests := []struct {
		name     string
		fare     float64
		expected float64
	}{
		{name: "Fare at the neutral point scores full", fare: 30, expected: 100},
		{name: "Cheap fare scores full", fare: 10, expected: 100},
		{name: "Each unit above neutral costs two points", fare: 50, expected: 60},
		{name: "Expensive fare bottoms out at zero", fare: 80, expected: 0},
		{name: "Beyond the floor stays at zero", fare: 200, expected: 0},
	}

	a := testAnalyzer(newFakeStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.costFactor(tt.fare))
		})
	}
}

func TestEfficiencyFrequencyFactor(t *testing.T) {
	a := testAnalyzer(newFakeStore())

	tests := []struct {
		name     string
		start    int
		end      int
		expected float64
	}{
		{name: "Sixteen hour span", start: 6, end: 22, expected: 32},
		{name: "Round the clock caps at 100", start: 0, end: 24, expected: 48},
		{name: "Overnight service wraps midnight", start: 22, end: 4, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := models.Route{OperatingStartHour: tt.start, OperatingEndHour: tt.end}
			assert.Equal(t, tt.expected, a.frequencyFactor(route))
		})
	}
}

func TestEfficiencyFactorsFromReports(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))
	store.reports["r1"] = []models.Report{
		windowReport("r1", models.ReportTypeDelay, models.SeverityLow, time.Hour),
		windowReport("r1", models.ReportTypeDelay, models.SeverityHigh, 2*time.Hour),
		windowReport("r1", models.ReportTypeSafety, models.SeverityMedium, 3*time.Hour),
		windowReport("r1", models.ReportTypeCrowding, models.SeverityHigh, 4*time.Hour),
	}

	a := testAnalyzer(store)
	score, err := a.Efficiency(context.Background(), "r1")
	require.NoError(t, err)

	// One low-severity reliability report out of four total.
	assert.InDelta(t, 25.0, score.Reliability, 1e-9)
	// Two delay reports: (80 + 40) / 2.
	assert.InDelta(t, 60.0, score.Speed, 1e-9)
	// One medium safety report: 100 - 15.
	assert.InDelta(t, 85.0, score.Safety, 1e-9)
	// One high crowding report.
	assert.InDelta(t, 50.0, score.Comfort, 1e-9)
	assert.Equal(t, 4, score.ReportCount)
}

func TestEfficiencyIgnoresReportsOutsideWindow(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))
	store.reports["r1"] = []models.Report{
		windowReport("r1", models.ReportTypeSafety, models.SeverityHigh, 45*24*time.Hour),
	}

	a := testAnalyzer(store)
	score, err := a.Efficiency(context.Background(), "r1")
	require.NoError(t, err)

	assert.Zero(t, score.ReportCount)
	assert.Equal(t, 80.0, score.Safety)
}

func TestEfficiencyAllFactorsInRange(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(500))
	var reports []models.Report
	for i := 0; i < 40; i++ {
		reports = append(reports,
			windowReport("r1", models.ReportTypeSafety, models.SeverityCritical, time.Duration(i)*time.Hour))
	}
	store.reports["r1"] = reports

	a := testAnalyzer(store)
	score, err := a.Efficiency(context.Background(), "r1")
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"reliability": score.Reliability,
		"speed":       score.Speed,
		"safety":      score.Safety,
		"comfort":     score.Comfort,
		"cost":        score.Cost,
		"frequency":   score.Frequency,
		"overall":     score.Overall,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 100.0, name)
	}
}

func TestEfficiencyRecommendationsFire(t *testing.T) {
	store := newFakeStore()
	route := efficiencyRoute(90)
	route.OperatingStartHour = 9
	route.OperatingEndHour = 17
	store.addRoute(route)
	store.reports["r1"] = []models.Report{
		windowReport("r1", models.ReportTypeDelay, models.SeverityHigh, time.Hour),
		windowReport("r1", models.ReportTypeSafety, models.SeverityHigh, time.Hour),
		windowReport("r1", models.ReportTypeCrowding, models.SeverityHigh, time.Hour),
	}

	a := testAnalyzer(store)
	score, err := a.Efficiency(context.Background(), "r1")
	require.NoError(t, err)

	// Low reliability, speed, safety, comfort, cost, and frequency all
	// trip their thresholds independently.
	assert.Len(t, score.Recommendations, 6)
}

func TestEfficiencyUnknownRoute(t *testing.T) {
	a := testAnalyzer(newFakeStore())

	_, err := a.Efficiency(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
