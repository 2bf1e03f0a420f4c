package spatial

import (
	"math"

	"github.com/tidwall/rtree"
	"transitpulse.org/internal/models"
)

const (
	earthRadiusMeters = 6371000
	metersPerDegree   = 111320
)

// StopRef points at a stop by its route and sequence position.
type StopRef struct {
	RouteID  string
	Position int
	Stop     models.Stop
}

// Index is an R-tree over every stop of a set of routes, used to match
// boarding points across routes by proximity.
type Index struct {
	tree rtree.RTree
}

// BuildIndex indexes the stops of all given routes.
func BuildIndex(routes []models.Route) *Index {
	idx := &Index{}
	for _, route := range routes {
		for i, stop := range route.Stops {
			ref := StopRef{RouteID: route.ID, Position: i, Stop: stop}
			idx.tree.Insert(
				[2]float64{stop.Lat, stop.Lon},
				[2]float64{stop.Lat, stop.Lon},
				ref,
			)
		}
	}
	return idx
}

// Nearby returns every indexed stop within radiusMeters of the given
// point. The R-tree search uses a degree-space bounding box, then
// candidates are filtered by great-circle distance.
func (idx *Index) Nearby(lat, lon, radiusMeters float64) []StopRef {
	latDelta := radiusMeters / metersPerDegree
	lonDelta := latDelta
	if cos := math.Cos(lat * math.Pi / 180); cos > 0.01 {
		lonDelta = latDelta / cos
	}

	var results []StopRef
	idx.tree.Search(
		[2]float64{lat - latDelta, lon - lonDelta},
		[2]float64{lat + latDelta, lon + lonDelta},
		func(min, max [2]float64, data interface{}) bool {
			ref, ok := data.(StopRef)
			if !ok {
				return true
			}
			if HaversineMeters(lat, lon, ref.Stop.Lat, ref.Stop.Lon) <= radiusMeters {
				results = append(results, ref)
			}
			return true
		},
	)
	return results
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
