package models

import "time"

// Stop is a named point on a route's ordered stop sequence.
type Stop struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Route is a transit line with its ordered stops and operating window.
// Operating hours are local hours of day; an end hour smaller than the
// start hour means the route runs past midnight.
type Route struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Fare               float64 `json:"fare"`
	OperatingStartHour int     `json:"operatingStartHour"`
	OperatingEndHour   int     `json:"operatingEndHour"`
	IsActive           bool    `json:"isActive"`
	Stops              []Stop  `json:"stops,omitempty"`
}

// StopIndex returns the position of the named stop on the route, or -1
// when the route does not serve it.
func (r Route) StopIndex(name string) int {
	for i, stop := range r.Stops {
		if stop.Name == name {
			return i
		}
	}
	return -1
}

// Report is a rider-submitted incident tied to a route. The route
// relation never changes after submission.
type Report struct {
	ID          string       `json:"id"`
	RouteID     string       `json:"routeId"`
	Type        ReportType   `json:"type"`
	Severity    Severity     `json:"severity"`
	Status      ReportStatus `json:"status"`
	Description string       `json:"description,omitempty"`
	Lat         *float64     `json:"lat,omitempty"`
	Lon         *float64     `json:"lon,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Scoreable reports whether this report may influence a published
// score. Pending and dismissed reports never do.
func (r Report) Scoreable() bool {
	return r.Status == StatusVerified || r.Status == StatusResolved
}

// ScoreVector is the persisted per-route quality score across four
// dimensions plus the derived overall value. One record per route,
// overwritten on each recomputation.
type ScoreVector struct {
	RouteID        string    `json:"routeId"`
	Reliability    float64   `json:"reliability"`
	Safety         float64   `json:"safety"`
	Punctuality    float64   `json:"punctuality"`
	Comfort        float64   `json:"comfort"`
	Overall        float64   `json:"overall"`
	TotalReports   int       `json:"totalReports"`
	LastCalculated time.Time `json:"lastCalculated"`
}
