package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transitpulse.org/internal/models"
)

func TestForecastDemandCountsOnlySlotReports(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))

	store.reports["r1"] = []models.Report{
		// 06:00 same day and 06:00 the day before: morning slot.
		windowReport("r1", models.ReportTypeCrowding, models.SeverityMedium, 2*time.Hour),
		windowReport("r1", models.ReportTypeCrowding, models.SeverityMedium, 26*time.Hour),
		// 17:00 the day before: evening slot.
		windowReport("r1", models.ReportTypeCrowding, models.SeverityMedium, 15*time.Hour),
	}

	a := testAnalyzer(store)

	morning, err := a.ForecastDemand(context.Background(), "r1", models.SlotMorning)
	require.NoError(t, err)

	// base = 2 * 2 = 4; June means seasonality 1.0, weather 1.05, event 1.0.
	assert.InDelta(t, 4*1.05, morning.Demand, 1e-9)
	assert.InDelta(t, 63.0, morning.Confidence, 1e-9)

	evening, err := a.ForecastDemand(context.Background(), "r1", models.SlotEvening)
	require.NoError(t, err)
	assert.InDelta(t, 2*1.05, evening.Demand, 1e-9)
}

func TestForecastDemandClampsToHundred(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))

	var reports []models.Report
	for i := 0; i < 80; i++ {
		// All at 06:00-ish on successive mornings.
		reports = append(reports,
			windowReport("r1", models.ReportTypeCrowding, models.SeverityMedium, time.Duration(i*24+2)*time.Hour))
	}
	store.reports["r1"] = reports

	a := testAnalyzer(store)
	forecast, err := a.ForecastDemand(context.Background(), "r1", models.SlotMorning)
	require.NoError(t, err)

	assert.LessOrEqual(t, forecast.Demand, 100.0)
	assert.Equal(t, 95.0, forecast.Confidence)
}

func TestForecastDemandSeasonality(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Month
		expected float64
	}{
		{name: "Spring peak", month: time.April, expected: 1.1},
		{name: "Fall shoulder", month: time.October, expected: 1.05},
		{name: "Baseline", month: time.July, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, seasonalityFactor(tt.month))
		})
	}
}

func TestForecastDemandNoReports(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))

	a := testAnalyzer(store)
	forecast, err := a.ForecastDemand(context.Background(), "r1", models.SlotNight)
	require.NoError(t, err)

	assert.Zero(t, forecast.Demand)
	assert.Equal(t, 60.0, forecast.Confidence)
}

func TestForecastDemandInvalidSlot(t *testing.T) {
	store := newFakeStore()
	store.addRoute(efficiencyRoute(30))

	a := testAnalyzer(store)
	_, err := a.ForecastDemand(context.Background(), "r1", models.TimeSlot("rush"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeSlot))
}

func TestSlotForHour(t *testing.T) {
	assert.Equal(t, models.SlotMorning, slotForHour(6))
	assert.Equal(t, models.SlotAfternoon, slotForHour(12))
	assert.Equal(t, models.SlotEvening, slotForHour(17))
	assert.Equal(t, models.SlotNight, slotForHour(23))
	assert.Equal(t, models.SlotNight, slotForHour(3))
}
