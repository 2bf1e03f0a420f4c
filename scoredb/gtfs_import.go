package scoredb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/OneBusAway/go-gtfs"
	"transitpulse.org/internal/logging"
	"transitpulse.org/internal/models"
)

// DefaultFare is assigned to GTFS-seeded routes. GTFS fare attributes
// are not parsed; operators adjust fares after seeding.
const DefaultFare = 30.0

// SeedFromGTFS bootstraps the route catalog from a static GTFS feed.
// The source may be a URL or a local zip path. Seeding is idempotent:
// routes are keyed by GTFS route id and replaced on re-import.
func (c *Client) SeedFromGTFS(ctx context.Context, source string) (int, error) {
	isLocalFile := !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")

	b, err := rawGTFSData(ctx, source, isLocalFile)
	if err != nil {
		return 0, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return 0, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return c.importStatic(ctx, staticData)
}

func rawGTFSData(ctx context.Context, source string, isLocalFile bool) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GTFS request: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "gtfs_seeder")),
		"http_response_body")

	return io.ReadAll(resp.Body)
}

func (c *Client) importStatic(ctx context.Context, staticData *gtfs.Static) (int, error) {
	// Pick, per route, the trip serving the most stops: its stop_times
	// give the route's canonical ordered stop sequence.
	bestTrip := make(map[string]*gtfs.ScheduledTrip)
	earliest := make(map[string]time.Duration)
	latest := make(map[string]time.Duration)

	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil || len(trip.StopTimes) == 0 {
			continue
		}
		routeID := trip.Route.Id

		if best, ok := bestTrip[routeID]; !ok || len(trip.StopTimes) > len(best.StopTimes) {
			bestTrip[routeID] = trip
		}

		first := trip.StopTimes[0].DepartureTime
		last := trip.StopTimes[len(trip.StopTimes)-1].ArrivalTime
		if cur, ok := earliest[routeID]; !ok || first < cur {
			earliest[routeID] = first
		}
		if cur, ok := latest[routeID]; !ok || last > cur {
			latest[routeID] = last
		}
	}

	imported := 0
	for i := range staticData.Routes {
		gtfsRoute := &staticData.Routes[i]
		trip, ok := bestTrip[gtfsRoute.Id]
		if !ok {
			continue
		}

		route := models.Route{
			ID:                 gtfsRoute.Id,
			Name:               routeDisplayName(gtfsRoute),
			Fare:               DefaultFare,
			OperatingStartHour: hourOf(earliest[gtfsRoute.Id], 0),
			OperatingEndHour:   hourOf(latest[gtfsRoute.Id], 24),
			IsActive:           true,
		}

		for _, st := range trip.StopTimes {
			if st.Stop == nil {
				continue
			}
			stop := models.Stop{Name: st.Stop.Name}
			if st.Stop.Latitude != nil {
				stop.Lat = *st.Stop.Latitude
			}
			if st.Stop.Longitude != nil {
				stop.Lon = *st.Stop.Longitude
			}
			route.Stops = append(route.Stops, stop)
		}

		if err := c.Queries.CreateRoute(ctx, route); err != nil {
			return imported, fmt.Errorf("failed to import route %s: %w", route.ID, err)
		}
		imported++
	}

	logging.LogOperation(c.logger, "gtfs_seed_complete",
		slog.Int("routes_imported", imported))
	return imported, nil
}

func routeDisplayName(route *gtfs.Route) string {
	if route.LongName != "" {
		return route.LongName
	}
	if route.ShortName != "" {
		return route.ShortName
	}
	return route.Id
}

func hourOf(d time.Duration, fallback int) int {
	if d <= 0 {
		return fallback
	}
	h := int(d / time.Hour)
	if h > 24 {
		h = 24
	}
	return h
}
