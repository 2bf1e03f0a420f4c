package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"transitpulse.org/internal/clock"
	"transitpulse.org/internal/logging"
	"transitpulse.org/internal/metrics"
	"transitpulse.org/internal/models"
)

// Store is the narrow storage surface the scheduler needs. Satisfied
// by *scoredb.Queries.
type Store interface {
	ListActiveRoutes(ctx context.Context) ([]models.Route, error)
	ListScoreableReportsByRoute(ctx context.Context, routeID string, sinceMillis int64) ([]models.Report, error)
	UpsertScore(ctx context.Context, vector models.ScoreVector) error
	GetRoute(ctx context.Context, id string) (models.Route, error)
}

// DefaultSweepInterval is the cadence between full recomputation sweeps.
const DefaultSweepInterval = time.Hour

// Scheduler owns the recompute cadence and the single-flight invariant:
// at most one full sweep runs at a time, and concurrent triggers
// collapse into the in-flight run. Single-route recomputation bypasses
// the guard; upserts are keyed by route id so it cannot race a sweep.
type Scheduler struct {
	store        Store
	aggregator   *Aggregator
	clock        clock.Clock
	logger       *slog.Logger
	interval     time.Duration
	running      atomic.Bool
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewScheduler(store Store, aggregator *Aggregator, c clock.Clock, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Scheduler{
		store:        store,
		aggregator:   aggregator,
		clock:        c,
		logger:       logger.With(slog.String("component", "scoring_scheduler")),
		interval:     interval,
		shutdownChan: make(chan struct{}),
	}
}

// Start launches the background sweep loop: an immediate run at
// process start, then one per interval until Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.RunFullRecompute(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunFullRecompute(ctx)
		case <-s.shutdownChan:
			logging.LogOperation(s.logger, "scheduler_shutting_down")
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop shuts the sweep loop down and waits for an in-flight sweep to
// finish.
func (s *Scheduler) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
		s.wg.Wait()
	})
}

// RunFullRecompute recomputes scores for every active route. When a
// sweep is already in flight the trigger is a no-op: it returns nil
// summaries and false, and is neither queued nor retried. A per-route
// failure is logged and skipped so one bad route never aborts the rest
// of the run.
func (s *Scheduler) RunFullRecompute(ctx context.Context) ([]models.RunSummary, bool) {
	if !s.running.CompareAndSwap(false, true) {
		logging.LogOperation(s.logger, "sweep_already_running_trigger_ignored")
		metrics.SweepsSkippedTotal.Inc()
		return nil, false
	}
	defer s.running.Store(false)

	started := s.clock.Now()
	logging.LogOperation(s.logger, "sweep_started")

	routes, err := s.store.ListActiveRoutes(ctx)
	if err != nil {
		// A store unreachable for the route listing degrades to an
		// empty run summary rather than a crash.
		logging.LogError(s.logger, "failed to list active routes", err)
		metrics.SweepsTotal.Inc()
		return []models.RunSummary{}, true
	}

	summaries := make([]models.RunSummary, 0, len(routes))
	for _, route := range routes {
		summary := models.RunSummary{RouteID: route.ID, RouteName: route.Name}

		vector, err := s.recompute(ctx, route.ID)
		if err != nil {
			summary.Error = err.Error()
			logging.LogError(s.logger, "route recompute failed", err,
				slog.String("route_id", route.ID))
			metrics.RouteFailuresTotal.Inc()
		} else {
			summary.Overall = vector.Overall
			summary.TotalReports = vector.TotalReports
			metrics.RoutesScoredTotal.Inc()
		}
		summaries = append(summaries, summary)
	}

	elapsed := s.clock.Now().Sub(started)
	metrics.SweepsTotal.Inc()
	metrics.SweepDurationSeconds.Observe(elapsed.Seconds())
	logging.LogOperation(s.logger, "sweep_completed",
		slog.Int("routes", len(summaries)),
		slog.Int("failures", countFailures(summaries)),
		slog.Duration("elapsed", elapsed))

	return summaries, true
}

// RecomputeRoute recomputes and persists the score for a single route,
// bypassing the single-flight guard. Returns scoredb.ErrNotFound
// (wrapped) for an unknown route.
func (s *Scheduler) RecomputeRoute(ctx context.Context, routeID string) (models.ScoreVector, error) {
	if _, err := s.store.GetRoute(ctx, routeID); err != nil {
		return models.ScoreVector{}, fmt.Errorf("route %s: %w", routeID, err)
	}
	return s.recompute(ctx, routeID)
}

func (s *Scheduler) recompute(ctx context.Context, routeID string) (models.ScoreVector, error) {
	reports, err := s.store.ListScoreableReportsByRoute(ctx, routeID, 0)
	if err != nil {
		return models.ScoreVector{}, fmt.Errorf("failed to load reports for route %s: %w", routeID, err)
	}

	vector := s.aggregator.Aggregate(routeID, reports, s.clock.Now())

	if err := s.store.UpsertScore(ctx, vector); err != nil {
		return models.ScoreVector{}, fmt.Errorf("failed to persist score for route %s: %w", routeID, err)
	}
	return vector, nil
}

func countFailures(summaries []models.RunSummary) int {
	failures := 0
	for _, summary := range summaries {
		if !summary.Succeeded() {
			failures++
		}
	}
	return failures
}
