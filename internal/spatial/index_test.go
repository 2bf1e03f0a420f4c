package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"transitpulse.org/internal/models"
)

func TestNearbyFindsStopsWithinRadius(t *testing.T) {
	routes := []models.Route{
		{
			ID: "r1",
			Stops: []models.Stop{
				{Name: "Central", Lat: 47.6062, Lon: -122.3321},
				{Name: "Harbor", Lat: 47.6100, Lon: -122.3400},
			},
		},
		{
			ID: "r2",
			Stops: []models.Stop{
				// ~100m north of Central
				{Name: "Central North", Lat: 47.6071, Lon: -122.3321},
			},
		},
	}

	idx := BuildIndex(routes)

	refs := idx.Nearby(47.6062, -122.3321, 300)

	names := make(map[string]bool)
	for _, ref := range refs {
		names[ref.Stop.Name] = true
	}
	assert.True(t, names["Central"])
	assert.True(t, names["Central North"])
	assert.False(t, names["Harbor"])
}

func TestNearbyEmptyIndex(t *testing.T) {
	idx := BuildIndex(nil)
	assert.Empty(t, idx.Nearby(47.0, -122.0, 500))
}

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := HaversineMeters(47.0, -122.0, 48.0, -122.0)
	assert.InDelta(t, 111195, d, 500)

	assert.Zero(t, HaversineMeters(47.0, -122.0, 47.0, -122.0))
}
