package app

import (
	"log/slog"

	"transitpulse.org/internal/analytics"
	"transitpulse.org/internal/appconf"
	"transitpulse.org/internal/clock"
	"transitpulse.org/internal/scoring"
	"transitpulse.org/scoredb"
)

// Application carries the shared dependencies handed to the HTTP layer.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	ScoreDB   *scoredb.Client
	Scheduler *scoring.Scheduler
	Analyzer  *analytics.Analyzer
}
