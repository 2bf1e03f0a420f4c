package models

import "time"

// RouteEfficiencyScore breaks a route's quality into six 0-100 factors
// with a weighted overall score and any recommendations that fired.
// Recomputed on every request, never persisted.
type RouteEfficiencyScore struct {
	RouteID         string   `json:"routeId"`
	RouteName       string   `json:"routeName"`
	Reliability     float64  `json:"reliability"`
	Speed           float64  `json:"speed"`
	Safety          float64  `json:"safety"`
	Comfort         float64  `json:"comfort"`
	Cost            float64  `json:"cost"`
	Frequency       float64  `json:"frequency"`
	Overall         float64  `json:"overall"`
	ReportCount     int      `json:"reportCount"`
	Recommendations []string `json:"recommendations"`
}

// TravelTimePrediction estimates the door-to-door minutes between two
// stops on a route, with optimistic/pessimistic bands.
type TravelTimePrediction struct {
	RouteID            string             `json:"routeId"`
	FromStop           string             `json:"fromStop"`
	ToStop             string             `json:"toStop"`
	PredictedMinutes   int                `json:"predictedMinutes"`
	OptimisticMinutes  int                `json:"optimisticMinutes"`
	PessimisticMinutes int                `json:"pessimisticMinutes"`
	Confidence         float64            `json:"confidence"`
	Factors            map[string]float64 `json:"factors"`
}

// AlternativeRoute is a candidate route serving both endpoints of a
// requested journey, ranked by estimated travel time.
type AlternativeRoute struct {
	RouteID          string  `json:"routeId"`
	RouteName        string  `json:"routeName"`
	FromStop         string  `json:"fromStop"`
	ToStop           string  `json:"toStop"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
	Fare             float64 `json:"fare"`
	Polyline         string  `json:"polyline,omitempty"`
}

// TrendDirection labels a period-over-period change.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendStable     TrendDirection = "stable"
	TrendDecreasing TrendDirection = "decreasing"
	TrendImproving  TrendDirection = "improving"
	TrendDeclining  TrendDirection = "declining"
	TrendWorsening  TrendDirection = "worsening"
)

// TrendAnalysis compares the current window against the immediately
// preceding window of equal length.
type TrendAnalysis struct {
	RouteID             string         `json:"routeId"`
	Period              TrendPeriod    `json:"period"`
	RidershipChangePct  float64        `json:"ridershipChangePct"`
	RidershipTrend      TrendDirection `json:"ridershipTrend"`
	EfficiencyChangePct float64        `json:"efficiencyChangePct"`
	EfficiencyTrend     TrendDirection `json:"efficiencyTrend"`
	SafetyChangePct     float64        `json:"safetyChangePct"`
	SafetyTrend         TrendDirection `json:"safetyTrend"`
	CurrentWindowStart  time.Time      `json:"currentWindowStart"`
	CurrentWindowEnd    time.Time      `json:"currentWindowEnd"`
}

// DemandForecast estimates ridership pressure for a route time slot
// on a 0-100 scale.
type DemandForecast struct {
	RouteID    string             `json:"routeId"`
	TimeSlot   TimeSlot           `json:"timeSlot"`
	Demand     float64            `json:"demand"`
	Confidence float64            `json:"confidence"`
	Factors    map[string]float64 `json:"factors"`
}

// UserRecommendation pairs a route with a weighted preference score
// and a human-readable reason naming the route's strongest factor.
type UserRecommendation struct {
	RouteID   string  `json:"routeId"`
	RouteName string  `json:"routeName"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// RunSummary records the outcome of one route within a scoring sweep.
// A failed route carries its error string; the sweep continues past it.
type RunSummary struct {
	RouteID      string  `json:"routeId"`
	RouteName    string  `json:"routeName"`
	Overall      float64 `json:"overall"`
	TotalReports int     `json:"totalReports"`
	Error        string  `json:"error,omitempty"`
}

// Succeeded reports whether the route's recomputation completed.
func (s RunSummary) Succeeded() bool {
	return s.Error == ""
}
