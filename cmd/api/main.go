package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"transitpulse.org/internal/appconf"
	"transitpulse.org/scoredb"
)

func main() {
	var cfg appconf.Config
	var dbCfg dbOptions
	var apiKeysFlag string
	var adminKeysFlag string
	var envFlag string

	// Parse command-line flags
	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma separated API keys")
	flag.StringVar(&adminKeysFlag, "admin-api-keys", "admin", "Comma separated admin API keys")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key for rate limiting")
	flag.DurationVar(&cfg.SweepInterval, "sweep-interval", time.Hour, "Interval between full score recomputation sweeps")
	flag.StringVar(&dbCfg.dbPath, "db-path", "./scores.db", "Path to the SQLite score database")
	flag.StringVar(&dbCfg.gtfsURL, "gtfs-url", "", "Optional static GTFS zip (URL or local path) to seed the route catalog from")
	flag.Parse()

	cfg.Name = "transitpulse"
	cfg.Verbose = true
	cfg.ApiKeys = ParseAPIKeys(apiKeysFlag)
	cfg.AdminApiKeys = ParseAPIKeys(adminKeysFlag)
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	coreApp, err := BuildApplication(cfg, scoredb.NewConfig(dbCfg.dbPath, cfg.Env, cfg.Verbose), dbCfg.gtfsURL)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	srv := CreateServer(coreApp, cfg)

	if err := Run(srv, coreApp); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type dbOptions struct {
	dbPath  string
	gtfsURL string
}
