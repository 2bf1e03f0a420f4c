package analytics

import (
	"context"
	"fmt"
	"time"

	"transitpulse.org/internal/models"
)

const (
	trendThresholdPct       = 5
	safetyTrendThresholdPct = 10
)

// AnalyzeTrends compares the current period window against the
// immediately preceding window of equal length: report volume as a
// ridership proxy, the efficiency factor model evaluated per window,
// and safety-report counts.
func (a *Analyzer) AnalyzeTrends(ctx context.Context, routeID string, period models.TrendPeriod) (models.TrendAnalysis, error) {
	if !models.ValidTrendPeriod(period) {
		return models.TrendAnalysis{}, fmt.Errorf("period %q: %w", period, ErrInvalidPeriod)
	}

	route, err := a.store.GetRoute(ctx, routeID)
	if err != nil {
		return models.TrendAnalysis{}, fmt.Errorf("route %s: %w", routeID, err)
	}

	window := periodWindow(period)
	now := a.clock.Now()
	currentStart := now.Add(-window)
	previousStart := now.Add(-2 * window)

	reports, err := a.store.ListScoreableReportsByRoute(ctx, routeID, previousStart.UnixMilli())
	if err != nil {
		return models.TrendAnalysis{}, fmt.Errorf("failed to load reports for route %s: %w", routeID, err)
	}

	current := filterSince(reports, currentStart)
	previous := filterBefore(reports, currentStart)

	currentEfficiency := a.efficiencyFromReports(route, current).Overall
	previousEfficiency := a.efficiencyFromReports(route, previous).Overall

	currentSafety := len(filterByType(current, models.ReportTypeSafety))
	previousSafety := len(filterByType(previous, models.ReportTypeSafety))

	analysis := models.TrendAnalysis{
		RouteID:             routeID,
		Period:              period,
		RidershipChangePct:  pctChange(float64(len(current)), float64(len(previous))),
		EfficiencyChangePct: pctChange(currentEfficiency, previousEfficiency),
		SafetyChangePct:     pctChange(float64(currentSafety), float64(previousSafety)),
		CurrentWindowStart:  currentStart,
		CurrentWindowEnd:    now,
	}

	analysis.RidershipTrend = bucketTrend(analysis.RidershipChangePct, trendThresholdPct,
		models.TrendIncreasing, models.TrendStable, models.TrendDecreasing)
	analysis.EfficiencyTrend = bucketTrend(analysis.EfficiencyChangePct, trendThresholdPct,
		models.TrendImproving, models.TrendStable, models.TrendDeclining)
	// More safety reports means the route is getting worse.
	analysis.SafetyTrend = bucketTrend(analysis.SafetyChangePct, safetyTrendThresholdPct,
		models.TrendWorsening, models.TrendStable, models.TrendImproving)

	return analysis, nil
}

func periodWindow(period models.TrendPeriod) time.Duration {
	switch period {
	case models.PeriodDaily:
		return 24 * time.Hour
	case models.PeriodWeekly:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// bucketTrend maps a percentage change into a three-way label around a
// symmetric threshold.
func bucketTrend(changePct, threshold float64, up, flat, down models.TrendDirection) models.TrendDirection {
	switch {
	case changePct > threshold:
		return up
	case changePct < -threshold:
		return down
	default:
		return flat
	}
}
