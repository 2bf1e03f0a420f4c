package scoredb

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Client owns the SQLite connection and exposes the query layer.
type Client struct {
	DB      *sql.DB
	Queries *Queries
	config  Config
	logger  *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS routes (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    fare                 REAL NOT NULL DEFAULT 0,
    operating_start_hour INTEGER NOT NULL DEFAULT 0,
    operating_end_hour   INTEGER NOT NULL DEFAULT 24,
    is_active            INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS stops (
    route_id TEXT NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name     TEXT NOT NULL,
    lat      REAL NOT NULL DEFAULT 0,
    lon      REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (route_id, position)
);

CREATE TABLE IF NOT EXISTS reports (
    id          TEXT PRIMARY KEY,
    route_id    TEXT NOT NULL REFERENCES routes(id),
    report_type TEXT NOT NULL,
    severity    TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'pending',
    description TEXT,
    lat         REAL,
    lon         REAL,
    created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_route_status ON reports(route_id, status);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);

CREATE TABLE IF NOT EXISTS scores (
    route_id        TEXT PRIMARY KEY REFERENCES routes(id),
    reliability     REAL NOT NULL,
    safety          REAL NOT NULL,
    punctuality     REAL NOT NULL,
    comfort         REAL NOT NULL,
    overall         REAL NOT NULL,
    total_reports   INTEGER NOT NULL,
    last_calculated INTEGER NOT NULL
);
`

// NewClient opens (or creates) the SQLite database at the configured
// path, applies connection pragmas, and ensures the schema exists.
func NewClient(config Config) (*Client, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", config.DBPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open score database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to score database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).With(slog.String("component", "scoredb"))

	return &Client{
		DB:      db,
		Queries: &Queries{db: db},
		config:  config,
		logger:  logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
