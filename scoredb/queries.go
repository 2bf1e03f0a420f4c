package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"transitpulse.org/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("scoredb: not found")

// Queries is the hand-written query layer over the score database.
type Queries struct {
	db *sql.DB
}

func NewQueries(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const createRoute = `
INSERT OR REPLACE INTO routes (id, name, fare, operating_start_hour, operating_end_hour, is_active)
VALUES (?, ?, ?, ?, ?, ?)
`

const deleteStopsForRoute = `DELETE FROM stops WHERE route_id = ?`

const createStop = `
INSERT INTO stops (route_id, position, name, lat, lon)
VALUES (?, ?, ?, ?, ?)
`

// CreateRoute inserts or replaces a route and its ordered stops.
func (q *Queries) CreateRoute(ctx context.Context, route models.Route) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, createRoute,
		route.ID,
		route.Name,
		route.Fare,
		route.OperatingStartHour,
		route.OperatingEndHour,
		boolToInt(route.IsActive),
	)
	if err != nil {
		return fmt.Errorf("failed to insert route %s: %w", route.ID, err)
	}

	if _, err = tx.ExecContext(ctx, deleteStopsForRoute, route.ID); err != nil {
		return fmt.Errorf("failed to clear stops for route %s: %w", route.ID, err)
	}

	for i, stop := range route.Stops {
		if _, err = tx.ExecContext(ctx, createStop, route.ID, i, stop.Name, stop.Lat, stop.Lon); err != nil {
			return fmt.Errorf("failed to insert stop %q for route %s: %w", stop.Name, route.ID, err)
		}
	}

	return tx.Commit()
}

const getRoute = `
SELECT id, name, fare, operating_start_hour, operating_end_hour, is_active
FROM routes WHERE id = ?
`

// GetRoute returns a single route with its ordered stops, or ErrNotFound.
func (q *Queries) GetRoute(ctx context.Context, id string) (models.Route, error) {
	row := q.db.QueryRowContext(ctx, getRoute, id)

	var route models.Route
	var active int
	err := row.Scan(
		&route.ID,
		&route.Name,
		&route.Fare,
		&route.OperatingStartHour,
		&route.OperatingEndHour,
		&active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, ErrNotFound
	}
	if err != nil {
		return models.Route{}, err
	}
	route.IsActive = active != 0

	route.Stops, err = q.stopsForRoute(ctx, route.ID)
	if err != nil {
		return models.Route{}, err
	}
	return route, nil
}

const listRoutes = `
SELECT id, name, fare, operating_start_hour, operating_end_hour, is_active
FROM routes ORDER BY id
`

const listActiveRoutes = `
SELECT id, name, fare, operating_start_hour, operating_end_hour, is_active
FROM routes WHERE is_active = 1 ORDER BY id
`

// ListRoutes returns every route, active or not, with stops loaded.
func (q *Queries) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return q.queryRoutes(ctx, listRoutes)
}

// ListActiveRoutes returns the routes that participate in scoring
// sweeps and recommendation ranking.
func (q *Queries) ListActiveRoutes(ctx context.Context) ([]models.Route, error) {
	return q.queryRoutes(ctx, listActiveRoutes)
}

func (q *Queries) queryRoutes(ctx context.Context, query string) ([]models.Route, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var routes []models.Route
	for rows.Next() {
		var route models.Route
		var active int
		if err := rows.Scan(
			&route.ID,
			&route.Name,
			&route.Fare,
			&route.OperatingStartHour,
			&route.OperatingEndHour,
			&active,
		); err != nil {
			return nil, err
		}
		route.IsActive = active != 0
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routes {
		routes[i].Stops, err = q.stopsForRoute(ctx, routes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return routes, nil
}

const getStopsForRoute = `
SELECT name, lat, lon FROM stops WHERE route_id = ? ORDER BY position
`

func (q *Queries) stopsForRoute(ctx context.Context, routeID string) ([]models.Stop, error) {
	rows, err := q.db.QueryContext(ctx, getStopsForRoute, routeID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stops []models.Stop
	for rows.Next() {
		var stop models.Stop
		if err := rows.Scan(&stop.Name, &stop.Lat, &stop.Lon); err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}

const setRouteActive = `UPDATE routes SET is_active = ? WHERE id = ?`

// SetRouteActive toggles a route in or out of active sweep iteration.
// Its score record stays queryable either way.
func (q *Queries) SetRouteActive(ctx context.Context, id string, active bool) error {
	res, err := q.db.ExecContext(ctx, setRouteActive, boolToInt(active), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const createReport = `
INSERT INTO reports (id, route_id, report_type, severity, status, description, lat, lon, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, route_id, report_type, severity, status, description, lat, lon, created_at
`

// CreateReport inserts a new incident report. The route relation is
// immutable after this point.
func (q *Queries) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	row := q.db.QueryRowContext(ctx, createReport,
		report.ID,
		report.RouteID,
		string(report.Type),
		string(report.Severity),
		string(report.Status),
		ToNullString(report.Description),
		NullFloatFromPtr(report.Lat),
		NullFloatFromPtr(report.Lon),
		report.CreatedAt.UnixMilli(),
	)
	return scanReport(row)
}

const updateReportStatus = `
UPDATE reports SET status = ? WHERE id = ?
RETURNING id, route_id, report_type, severity, status, description, lat, lon, created_at
`

// UpdateReportStatus moves a report through moderation.
func (q *Queries) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (models.Report, error) {
	row := q.db.QueryRowContext(ctx, updateReportStatus, string(status), id)
	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrNotFound
	}
	return report, err
}

const listReportsByRoute = `
SELECT id, route_id, report_type, severity, status, description, lat, lon, created_at
FROM reports
WHERE route_id = ? AND created_at >= ?
ORDER BY created_at
`

const listScoreableReportsByRoute = `
SELECT id, route_id, report_type, severity, status, description, lat, lon, created_at
FROM reports
WHERE route_id = ? AND status IN ('verified', 'resolved') AND created_at >= ?
ORDER BY created_at
`

// ListReportsByRoute returns all reports for a route created at or
// after sinceMillis (pass 0 for the full history).
func (q *Queries) ListReportsByRoute(ctx context.Context, routeID string, sinceMillis int64) ([]models.Report, error) {
	return q.queryReports(ctx, listReportsByRoute, routeID, sinceMillis)
}

// ListScoreableReportsByRoute returns only verified and resolved
// reports, the subset that may influence a published score.
func (q *Queries) ListScoreableReportsByRoute(ctx context.Context, routeID string, sinceMillis int64) ([]models.Report, error) {
	return q.queryReports(ctx, listScoreableReportsByRoute, routeID, sinceMillis)
}

func (q *Queries) queryReports(ctx context.Context, query, routeID string, sinceMillis int64) ([]models.Report, error) {
	rows, err := q.db.QueryContext(ctx, query, routeID, sinceMillis)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reports []models.Report
	for rows.Next() {
		report, err := scanReportRows(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

const upsertScore = `
INSERT INTO scores (route_id, reliability, safety, punctuality, comfort, overall, total_reports, last_calculated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(route_id) DO UPDATE SET
    reliability = excluded.reliability,
    safety = excluded.safety,
    punctuality = excluded.punctuality,
    comfort = excluded.comfort,
    overall = excluded.overall,
    total_reports = excluded.total_reports,
    last_calculated = excluded.last_calculated
`

// UpsertScore overwrites the route's score record, creating it on
// first aggregation. Keyed by route id, never appended.
func (q *Queries) UpsertScore(ctx context.Context, vector models.ScoreVector) error {
	_, err := q.db.ExecContext(ctx, upsertScore,
		vector.RouteID,
		vector.Reliability,
		vector.Safety,
		vector.Punctuality,
		vector.Comfort,
		vector.Overall,
		vector.TotalReports,
		vector.LastCalculated.UnixMilli(),
	)
	return err
}

const getScore = `
SELECT route_id, reliability, safety, punctuality, comfort, overall, total_reports, last_calculated
FROM scores WHERE route_id = ?
`

// GetScore returns the latest computed score for a route, or ErrNotFound.
func (q *Queries) GetScore(ctx context.Context, routeID string) (models.ScoreVector, error) {
	row := q.db.QueryRowContext(ctx, getScore, routeID)
	vector, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScoreVector{}, ErrNotFound
	}
	return vector, err
}

const listScores = `
SELECT route_id, reliability, safety, punctuality, comfort, overall, total_reports, last_calculated
FROM scores ORDER BY route_id
`

// ListScores returns every stored score record.
func (q *Queries) ListScores(ctx context.Context) ([]models.ScoreVector, error) {
	rows, err := q.db.QueryContext(ctx, listScores)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scores []models.ScoreVector
	for rows.Next() {
		vector, err := scanScoreRows(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, vector)
	}
	return scores, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
