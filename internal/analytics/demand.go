package analytics

import (
	"context"
	"fmt"
	"time"

	"transitpulse.org/internal/models"
)

// ForecastDemand estimates ridership pressure for a route and time
// slot on a 0-100 scale, from the historical report volume in that
// slot adjusted by weather, event, and seasonality multipliers.
func (a *Analyzer) ForecastDemand(ctx context.Context, routeID string, slot models.TimeSlot) (models.DemandForecast, error) {
	if !models.ValidTimeSlot(slot) {
		return models.DemandForecast{}, fmt.Errorf("time slot %q: %w", slot, ErrInvalidTimeSlot)
	}

	if _, err := a.store.GetRoute(ctx, routeID); err != nil {
		return models.DemandForecast{}, fmt.Errorf("route %s: %w", routeID, err)
	}

	reports, err := a.reportsInWindow(ctx, routeID)
	if err != nil {
		return models.DemandForecast{}, fmt.Errorf("failed to load reports for route %s: %w", routeID, err)
	}

	count := 0
	for _, r := range reports {
		if slotForHour(r.CreatedAt.Hour()) == slot {
			count++
		}
	}

	base := float64(count) * a.config.DemandPerReport
	if base > 100 {
		base = 100
	}

	factors := map[string]float64{
		"weather":     a.config.DemandWeatherFactor,
		"event":       a.config.DemandEventFactor,
		"seasonality": seasonalityFactor(a.clock.Now().Month()),
	}

	demand := base
	for _, f := range factors {
		demand *= f
	}

	confidence := a.config.DemandBaseConfidence + a.config.DemandConfidencePerRpt*float64(count)
	if confidence > a.config.MaxConfidence {
		confidence = a.config.MaxConfidence
	}

	return models.DemandForecast{
		RouteID:    routeID,
		TimeSlot:   slot,
		Demand:     clampRange(demand, 0, 100),
		Confidence: confidence,
		Factors:    factors,
	}, nil
}

func slotForHour(hour int) models.TimeSlot {
	switch {
	case hour >= 6 && hour < 12:
		return models.SlotMorning
	case hour >= 12 && hour < 17:
		return models.SlotAfternoon
	case hour >= 17 && hour < 22:
		return models.SlotEvening
	default:
		return models.SlotNight
	}
}

// Spring and fall ridership runs above baseline.
func seasonalityFactor(month time.Month) float64 {
	switch {
	case month >= time.March && month <= time.May:
		return 1.1
	case month >= time.September && month <= time.November:
		return 1.05
	default:
		return 1.0
	}
}
