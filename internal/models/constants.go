package models

// ReportType classifies what kind of incident a rider reported.
type ReportType string

const (
	ReportTypeDelay     ReportType = "delay"
	ReportTypeSafety    ReportType = "safety"
	ReportTypeCrowding  ReportType = "crowding"
	ReportTypeBreakdown ReportType = "breakdown"
	ReportTypeOther     ReportType = "other"
)

// Severity grades how serious a report is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ReportStatus tracks a report through moderation. Only verified and
// resolved reports ever influence a published score.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusVerified  ReportStatus = "verified"
	StatusResolved  ReportStatus = "resolved"
	StatusDismissed ReportStatus = "dismissed"
)

// TrendPeriod selects the comparison window for trend analysis.
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
)

// TimeSlot buckets the day for demand forecasting.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

const (
	// ScoreMax is the ceiling of every score-vector dimension. Scores
	// start here and are eroded by verified reports.
	ScoreMax = 5.0

	// EfficiencyWindowDays is the trailing report window used by the
	// efficiency, demand, and alternative-route computations.
	EfficiencyWindowDays = 30

	DefaultWalkingRadiusMeters = 300
	MaxRecommendations         = 5
)

// ValidReportType reports whether t is one of the recognized report
// types. Unrecognized types still aggregate (they fall into the spread
// distribution) but are rejected at the submission boundary.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeDelay, ReportTypeSafety, ReportTypeCrowding, ReportTypeBreakdown, ReportTypeOther:
		return true
	}
	return false
}

func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case StatusPending, StatusVerified, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

func ValidTrendPeriod(p TrendPeriod) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

func ValidTimeSlot(s TimeSlot) bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		return true
	}
	return false
}
