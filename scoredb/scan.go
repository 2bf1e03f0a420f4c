package scoredb

import (
	"database/sql"
	"time"

	"transitpulse.org/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.Report, error) {
	var report models.Report
	var reportType, severity, status string
	var description sql.NullString
	var lat, lon sql.NullFloat64
	var createdAt int64

	err := row.Scan(
		&report.ID,
		&report.RouteID,
		&reportType,
		&severity,
		&status,
		&description,
		&lat,
		&lon,
		&createdAt,
	)
	if err != nil {
		return models.Report{}, err
	}

	report.Type = models.ReportType(reportType)
	report.Severity = models.Severity(severity)
	report.Status = models.ReportStatus(status)
	report.Description = NullStringOrEmpty(description)
	report.Lat = PtrFromNullFloat(lat)
	report.Lon = PtrFromNullFloat(lon)
	report.CreatedAt = time.UnixMilli(createdAt).UTC()
	return report, nil
}

func scanReportRows(rows *sql.Rows) (models.Report, error) {
	return scanReport(rows)
}

func scanScore(row rowScanner) (models.ScoreVector, error) {
	var vector models.ScoreVector
	var lastCalculated int64

	err := row.Scan(
		&vector.RouteID,
		&vector.Reliability,
		&vector.Safety,
		&vector.Punctuality,
		&vector.Comfort,
		&vector.Overall,
		&vector.TotalReports,
		&lastCalculated,
	)
	if err != nil {
		return models.ScoreVector{}, err
	}

	vector.LastCalculated = time.UnixMilli(lastCalculated).UTC()
	return vector, nil
}

func scanScoreRows(rows *sql.Rows) (models.ScoreVector, error) {
	return scanScore(rows)
}
