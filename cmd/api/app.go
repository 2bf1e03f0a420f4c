package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"transitpulse.org/internal/analytics"
	"transitpulse.org/internal/app"
	"transitpulse.org/internal/appconf"
	"transitpulse.org/internal/clock"
	"transitpulse.org/internal/logging"
	"transitpulse.org/internal/restapi"
	"transitpulse.org/internal/scoring"
	"transitpulse.org/scoredb"
)

// ParseAPIKeys splits a comma-separated string of API keys and trims whitespace from each key.
// Returns an empty slice if the input is empty.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}

	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication creates and initializes the Application with all
// dependencies: the score database, the scoring scheduler, and the
// analytics engine. When gtfsURL is non-empty the route catalog is
// seeded from it before the server starts.
func BuildApplication(cfg appconf.Config, dbCfg scoredb.Config, gtfsURL string) (*app.Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	systemClock := clock.SystemClock{}

	scoreDB, err := scoredb.NewClient(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open score database: %w", err)
	}

	if gtfsURL != "" {
		imported, err := scoreDB.SeedFromGTFS(context.Background(), gtfsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to seed routes from GTFS: %w", err)
		}
		logger.Info("seeded route catalog from GTFS", "routes", imported)
	}

	aggregator := scoring.NewAggregator(scoring.DefaultWeights())
	scheduler := scoring.NewScheduler(scoreDB.Queries, aggregator, systemClock, logger, cfg.SweepInterval)
	analyzer := analytics.NewAnalyzer(scoreDB.Queries, systemClock, analytics.DefaultConfig(), logger)

	coreApp := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Clock:     systemClock,
		ScoreDB:   scoreDB,
		Scheduler: scheduler,
		Analyzer:  analyzer,
	}

	return coreApp, nil
}

// CreateServer creates and configures the HTTP server with routes and middleware.
func CreateServer(coreApp *app.Application, cfg appconf.Config) *http.Server {
	api := restapi.NewRestAPI(coreApp)

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	secureHandler := api.WithSecurityHeaders(mux)

	// Request id first so the request logger can pick it up.
	requestLogger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	handler := restapi.RequestIDMiddleware(
		restapi.NewRequestLoggingMiddleware(requestLogger)(secureHandler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv
}

// Run manages the server lifecycle with graceful shutdown. The scoring
// scheduler starts with the server and is stopped before the database
// closes so an in-flight sweep finishes cleanly.
func Run(srv *http.Server, coreApp *app.Application) error {
	logger := coreApp.Logger
	logger.Info("starting server", "addr", srv.Addr, "env", coreApp.Config.Env.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coreApp.Scheduler.Start(ctx)

	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		coreApp.Scheduler.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	coreApp.Scheduler.Stop()

	if err := coreApp.ScoreDB.Close(); err != nil {
		logger.Error("failed to close score database", "error", err)
	}

	logger.Info("server exited")
	return nil
}
