package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"transitpulse.org/internal/models"
)

// PredictTravelTime estimates the minutes between two stops on a
// route. The base time grows with stop distance along the sequence and
// is adjusted by independent multiplicative factors: time of day, day
// of week, weather, traffic, and the route's recent delay history.
// at selects the departure time; nil means now.
func (a *Analyzer) PredictTravelTime(ctx context.Context, routeID, fromStop, toStop string, at *time.Time) (models.TravelTimePrediction, error) {
	route, err := a.store.GetRoute(ctx, routeID)
	if err != nil {
		return models.TravelTimePrediction{}, fmt.Errorf("route %s: %w", routeID, err)
	}

	fromIdx := route.StopIndex(fromStop)
	if fromIdx < 0 {
		return models.TravelTimePrediction{}, fmt.Errorf("stop %q: %w", fromStop, ErrStopNotFound)
	}
	toIdx := route.StopIndex(toStop)
	if toIdx < 0 {
		return models.TravelTimePrediction{}, fmt.Errorf("stop %q: %w", toStop, ErrStopNotFound)
	}

	departure := a.clock.Now()
	if at != nil {
		departure = *at
	}

	reports, err := a.reportsInWindow(ctx, routeID)
	if err != nil {
		return models.TravelTimePrediction{}, fmt.Errorf("failed to load reports for route %s: %w", routeID, err)
	}
	delays := filterByType(reports, models.ReportTypeDelay)

	base := a.config.MinutesPerStop * float64(toIdx-fromIdx)
	if base < a.config.MinimumTravelMinutes {
		base = a.config.MinimumTravelMinutes
	}

	factors := map[string]float64{
		"timeOfDay":  timeOfDayFactor(departure.Hour()),
		"dayOfWeek":  dayOfWeekFactor(departure.Weekday()),
		"weather":    a.config.WeatherFactor,
		"traffic":    trafficFactor(departure.Hour()),
		"historical": a.historicalFactor(delays),
	}

	predicted := base
	for _, f := range factors {
		predicted *= f
	}

	confidence := a.config.BaseConfidence + a.config.ConfidencePerReport*float64(len(delays))
	if confidence > a.config.MaxConfidence {
		confidence = a.config.MaxConfidence
	}

	rounded := int(math.Round(predicted))
	return models.TravelTimePrediction{
		RouteID:            routeID,
		FromStop:           fromStop,
		ToStop:             toStop,
		PredictedMinutes:   rounded,
		OptimisticMinutes:  int(math.Round(a.config.OptimisticBand * float64(rounded))),
		PessimisticMinutes: int(math.Round(a.config.PessimisticBand * float64(rounded))),
		Confidence:         confidence,
		Factors:            factors,
	}, nil
}

// Rush-hour bands: morning 07-09, evening 17-19, late night 22-05.
func timeOfDayFactor(hour int) float64 {
	switch {
	case hour >= 7 && hour <= 9:
		return 1.3
	case hour >= 17 && hour <= 19:
		return 1.4
	case hour >= 22 || hour <= 5:
		return 0.8
	default:
		return 1.0
	}
}

func dayOfWeekFactor(day time.Weekday) float64 {
	if day == time.Saturday || day == time.Sunday {
		return 0.9
	}
	return 1.0
}

// trafficFactor mirrors the rush-hour bands with a flat congestion
// penalty.
func trafficFactor(hour int) float64 {
	if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
		return 1.2
	}
	return 1.0
}

// historicalFactor derives a slowdown multiplier from the mean
// severity of recent delay reports, floored so a clean history never
// speeds a prediction up unboundedly.
func (a *Analyzer) historicalFactor(delays []models.Report) float64 {
	if len(delays) == 0 {
		return 1.0
	}

	values := make([]float64, 0, len(delays))
	for _, r := range delays {
		values = append(values, a.config.TravelSeverityValues[r.Severity])
	}

	factor := 2.0 - stat.Mean(values, nil)
	if factor < a.config.HistoricalFactorFloor {
		factor = a.config.HistoricalFactorFloor
	}
	return factor
}
