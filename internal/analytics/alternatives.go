package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/twpayne/go-polyline"
	"transitpulse.org/internal/models"
	"transitpulse.org/internal/spatial"
)

// FindAlternatives lists the active routes that can carry a journey
// between two stops, ranked by estimated travel time. Stops match by
// exact name or by walking proximity to a stop with that name.
// maxTime (minutes) and maxCost (fare) are optional filters; nil means
// unlimited.
func (a *Analyzer) FindAlternatives(ctx context.Context, fromStop, toStop string, maxTime *int, maxCost *float64) ([]models.AlternativeRoute, error) {
	routes, err := a.store.ListActiveRoutes(ctx)
	if err != nil {
		return nil, err
	}

	index := spatial.BuildIndex(routes)
	fromMatches := matchStops(routes, index, fromStop)
	toMatches := matchStops(routes, index, toStop)

	departure := a.clock.Now()
	alternatives := []models.AlternativeRoute{}

	for _, route := range routes {
		fromIdx, ok := fromMatches[route.ID]
		if !ok {
			continue
		}
		toIdx, ok := toMatches[route.ID]
		if !ok || toIdx <= fromIdx {
			continue
		}

		reports, err := a.reportsInWindow(ctx, route.ID)
		if err != nil {
			return nil, err
		}
		delays := filterByType(reports, models.ReportTypeDelay)

		base := a.config.MinutesPerStop * float64(toIdx-fromIdx)
		if base < a.config.MinimumTravelMinutes {
			base = a.config.MinimumTravelMinutes
		}
		estimated := base *
			timeOfDayFactor(departure.Hour()) *
			dayOfWeekFactor(departure.Weekday()) *
			a.config.WeatherFactor *
			trafficFactor(departure.Hour()) *
			a.historicalFactor(delays)
		minutes := int(math.Round(estimated))

		if maxTime != nil && minutes > *maxTime {
			continue
		}
		if maxCost != nil && route.Fare > *maxCost {
			continue
		}

		alternatives = append(alternatives, models.AlternativeRoute{
			RouteID:          route.ID,
			RouteName:        route.Name,
			FromStop:         route.Stops[fromIdx].Name,
			ToStop:           route.Stops[toIdx].Name,
			EstimatedMinutes: minutes,
			Fare:             route.Fare,
			Polyline:         encodeSegment(route.Stops[fromIdx : toIdx+1]),
		})
	}

	sort.Slice(alternatives, func(i, j int) bool {
		return alternatives[i].EstimatedMinutes < alternatives[j].EstimatedMinutes
	})
	return alternatives, nil
}

// matchStops maps each route to the sequence position of a stop
// matching the given name, either exactly or within walking distance
// of the named stop's location.
func matchStops(routes []models.Route, index *spatial.Index, name string) map[string]int {
	matches := map[string]int{}
	var anchor *models.Stop

	for _, route := range routes {
		if idx := route.StopIndex(name); idx >= 0 {
			if _, ok := matches[route.ID]; !ok {
				matches[route.ID] = idx
			}
			if anchor == nil {
				stop := route.Stops[idx]
				anchor = &stop
			}
		}
	}

	// An unset location encodes as (0, 0), same convention as
	// encodeSegment. Anchoring the proximity search there would match
	// stops near the Gulf of Guinea, so only exact names count.
	if anchor == nil || (anchor.Lat == 0 && anchor.Lon == 0) {
		return matches
	}

	// Exact matches win; proximity only adds routes that do not serve
	// the stop by name.
	for _, ref := range index.Nearby(anchor.Lat, anchor.Lon, models.DefaultWalkingRadiusMeters) {
		if _, ok := matches[ref.RouteID]; !ok {
			matches[ref.RouteID] = ref.Position
		}
	}
	return matches
}

// encodeSegment encodes the stop coordinates of a route segment as a
// Google polyline for map rendering.
func encodeSegment(stops []models.Stop) string {
	coords := make([][]float64, 0, len(stops))
	for _, stop := range stops {
		if stop.Lat == 0 && stop.Lon == 0 {
			continue
		}
		coords = append(coords, []float64{stop.Lat, stop.Lon})
	}
	if len(coords) == 0 {
		return ""
	}
	return string(polyline.EncodeCoords(coords))
}
