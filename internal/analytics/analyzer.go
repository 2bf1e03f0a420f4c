package analytics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"transitpulse.org/internal/clock"
	"transitpulse.org/internal/models"
)

// Sentinel errors surfaced to the HTTP layer. Unknown routes propagate
// the store's not-found error instead.
var (
	ErrStopNotFound    = errors.New("analytics: stop not on route")
	ErrInvalidPeriod   = errors.New("analytics: invalid trend period")
	ErrInvalidTimeSlot = errors.New("analytics: invalid time slot")
)

// Store is the read-only storage surface the analyzer consumes.
// Satisfied by *scoredb.Queries.
type Store interface {
	GetRoute(ctx context.Context, id string) (models.Route, error)
	ListActiveRoutes(ctx context.Context) ([]models.Route, error)
	ListScoreableReportsByRoute(ctx context.Context, routeID string, sinceMillis int64) ([]models.Report, error)
}

// Analyzer computes derived, presentation-ready metrics from report
// history and route metadata. Every operation is stateless and
// side-effect-free: results are recomputed on each call and never
// cached here.
type Analyzer struct {
	store  Store
	clock  clock.Clock
	config Config
	logger *slog.Logger
}

func NewAnalyzer(store Store, c clock.Clock, config Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		store:  store,
		clock:  c,
		config: config,
		logger: logger.With(slog.String("component", "analytics")),
	}
}

// windowStart returns the unix-millis cutoff for the trailing report
// window used by efficiency, demand, and travel-time history.
func (a *Analyzer) windowStart() int64 {
	return a.clock.Now().AddDate(0, 0, -models.EfficiencyWindowDays).UnixMilli()
}

// reportsInWindow loads the scoreable reports for a route inside the
// trailing window.
func (a *Analyzer) reportsInWindow(ctx context.Context, routeID string) ([]models.Report, error) {
	return a.store.ListScoreableReportsByRoute(ctx, routeID, a.windowStart())
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pctChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// filterByType returns the reports whose type is in the given set.
func filterByType(reports []models.Report, types ...models.ReportType) []models.Report {
	var out []models.Report
	for _, r := range reports {
		for _, t := range types {
			if r.Type == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// filterSince returns the reports created at or after cutoff.
func filterSince(reports []models.Report, cutoff time.Time) []models.Report {
	var out []models.Report
	for _, r := range reports {
		if !r.CreatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// filterBefore returns the reports created before cutoff.
func filterBefore(reports []models.Report, cutoff time.Time) []models.Report {
	var out []models.Report
	for _, r := range reports {
		if r.CreatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
