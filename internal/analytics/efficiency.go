package analytics

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"
	"transitpulse.org/internal/models"
)

// Efficiency combines a route's trailing-window report history with
// its fare and operating hours into a six-factor 0-100 breakdown.
func (a *Analyzer) Efficiency(ctx context.Context, routeID string) (models.RouteEfficiencyScore, error) {
	route, err := a.store.GetRoute(ctx, routeID)
	if err != nil {
		return models.RouteEfficiencyScore{}, fmt.Errorf("route %s: %w", routeID, err)
	}

	reports, err := a.reportsInWindow(ctx, routeID)
	if err != nil {
		return models.RouteEfficiencyScore{}, fmt.Errorf("failed to load reports for route %s: %w", routeID, err)
	}

	return a.efficiencyFromReports(route, reports), nil
}

// efficiencyFromReports is the pure factor model, shared with trend
// analysis which evaluates it per comparison window.
func (a *Analyzer) efficiencyFromReports(route models.Route, reports []models.Report) models.RouteEfficiencyScore {
	cfg := a.config

	score := models.RouteEfficiencyScore{
		RouteID:     route.ID,
		RouteName:   route.Name,
		Reliability: a.reliabilityFactor(reports),
		Speed:       a.speedFactor(reports),
		Safety:      a.safetyFactor(reports),
		Comfort:     a.comfortFactor(reports),
		Cost:        a.costFactor(route.Fare),
		Frequency:   a.frequencyFactor(route),
		ReportCount: len(reports),
	}

	w := cfg.EfficiencyWeights
	score.Overall = score.Reliability*w.Reliability +
		score.Speed*w.Speed +
		score.Safety*w.Safety +
		score.Comfort*w.Comfort +
		score.Cost*w.Cost +
		score.Frequency*w.Frequency

	score.Recommendations = a.recommendationsFor(score)
	return score
}

// reliabilityFactor is the share of reliability-affecting reports
// (delays and breakdowns) that were only low severity.
func (a *Analyzer) reliabilityFactor(reports []models.Report) float64 {
	if len(reports) == 0 {
		return a.config.DefaultReliability
	}

	lowSeverity := 0
	for _, r := range filterByType(reports, models.ReportTypeDelay, models.ReportTypeBreakdown) {
		if r.Severity == models.SeverityLow {
			lowSeverity++
		}
	}
	return clampRange(float64(lowSeverity)/float64(len(reports))*100, 0, 100)
}

func (a *Analyzer) speedFactor(reports []models.Report) float64 {
	delays := filterByType(reports, models.ReportTypeDelay)
	if len(delays) == 0 {
		return a.config.DefaultSpeed
	}

	scores := make([]float64, 0, len(delays))
	for _, r := range delays {
		scores = append(scores, a.config.SpeedScores[r.Severity])
	}
	return clampRange(stat.Mean(scores, nil), 0, 100)
}

func (a *Analyzer) safetyFactor(reports []models.Report) float64 {
	safetyReports := filterByType(reports, models.ReportTypeSafety)
	if len(safetyReports) == 0 {
		return a.config.DefaultSafety
	}

	penalties := make([]float64, 0, len(safetyReports))
	for _, r := range safetyReports {
		penalties = append(penalties, a.config.SafetyPenalties[r.Severity])
	}
	return clampRange(100-stat.Mean(penalties, nil), 0, 100)
}

func (a *Analyzer) comfortFactor(reports []models.Report) float64 {
	crowding := filterByType(reports, models.ReportTypeCrowding)
	if len(crowding) == 0 {
		return a.config.DefaultComfort
	}

	scores := make([]float64, 0, len(crowding))
	for _, r := range crowding {
		scores = append(scores, a.config.ComfortScores[r.Severity])
	}
	return clampRange(stat.Mean(scores, nil), 0, 100)
}

func (a *Analyzer) costFactor(fare float64) float64 {
	if fare <= a.config.CostNeutralFare {
		return 100
	}
	return clampRange(100-(fare-a.config.CostNeutralFare)*a.config.CostPenaltyPerUnit, 0, 100)
}

func (a *Analyzer) frequencyFactor(route models.Route) float64 {
	span := route.OperatingEndHour - route.OperatingStartHour
	if span < 0 {
		// Overnight service wraps past midnight.
		span += 24
	}
	return clampRange(float64(span)*2, 0, 100)
}

// Fixed per-factor thresholds; multiple recommendations may fire
// independently.
func (a *Analyzer) recommendationsFor(score models.RouteEfficiencyScore) []string {
	recommendations := []string{}
	if score.Reliability < 70 {
		recommendations = append(recommendations, "Improve scheduling consistency to reduce delay and breakdown reports")
	}
	if score.Speed < 60 {
		recommendations = append(recommendations, "Review route alignment and signal priority to reduce travel delays")
	}
	if score.Safety < 75 {
		recommendations = append(recommendations, "Increase safety measures and incident response along the route")
	}
	if score.Comfort < 60 {
		recommendations = append(recommendations, "Add capacity during peak periods to relieve crowding")
	}
	if score.Cost < 50 {
		recommendations = append(recommendations, "Reassess the fare level against comparable routes")
	}
	if score.Frequency < 50 {
		recommendations = append(recommendations, "Extend operating hours to improve service availability")
	}
	return recommendations
}
