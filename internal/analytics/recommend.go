package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"transitpulse.org/internal/logging"
	"transitpulse.org/internal/models"
)

// RecommendForUser ranks the active routes for a user by combining
// each route's efficiency breakdown with the user's preference
// weights. The report data does not yet support learned preferences,
// so every user gets the default weighting; userID is the extension
// point for personalization.
func (a *Analyzer) RecommendForUser(ctx context.Context, userID string) ([]models.UserRecommendation, error) {
	routes, err := a.store.ListActiveRoutes(ctx)
	if err != nil {
		return nil, err
	}

	prefs := a.config.PreferenceWeights
	recommendations := []models.UserRecommendation{}

	for _, route := range routes {
		reports, err := a.reportsInWindow(ctx, route.ID)
		if err != nil {
			// One route's store failure should not empty the whole
			// recommendation list.
			logging.LogError(a.logger, "skipping route in recommendations", err,
				slog.String("route_id", route.ID))
			continue
		}

		efficiency := a.efficiencyFromReports(route, reports)
		score := efficiency.Overall*prefs.Efficiency +
			efficiency.Safety*prefs.Safety +
			efficiency.Cost*prefs.Cost +
			efficiency.Frequency*prefs.Convenience

		if score <= a.config.RecommendationFloor {
			continue
		}

		recommendations = append(recommendations, models.UserRecommendation{
			RouteID:   route.ID,
			RouteName: route.Name,
			Score:     score,
			Reason:    strongestFactorReason(efficiency),
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > models.MaxRecommendations {
		recommendations = recommendations[:models.MaxRecommendations]
	}
	return recommendations, nil
}

// strongestFactorReason names the factor the route scores best on.
func strongestFactorReason(e models.RouteEfficiencyScore) string {
	type factor struct {
		value  float64
		reason string
	}
	factors := []factor{
		{e.Reliability, "consistently reliable service"},
		{e.Speed, "fast travel times"},
		{e.Safety, "a strong safety record"},
		{e.Comfort, "a comfortable ride"},
		{e.Cost, "an affordable fare"},
		{e.Frequency, "long operating hours"},
	}

	best := factors[0]
	for _, f := range factors[1:] {
		if f.value > best.value {
			best = f
		}
	}
	return fmt.Sprintf("Recommended for %s", best.reason)
}
