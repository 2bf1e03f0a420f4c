package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpulse.org/internal/models"
)

func verifiedReport(routeID string, reportType models.ReportType, severity models.Severity, createdAt time.Time) models.Report {
	return models.Report{
		ID:        routeID + "-" + string(reportType) + "-" + createdAt.Format("20060102150405"),
		RouteID:   routeID,
		Type:      reportType,
		Severity:  severity,
		Status:    models.StatusVerified,
		CreatedAt: createdAt,
	}
}

func TestEfficiencyHandlerReturnsFactors(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	seedReport(t, client, verifiedReport("r1", models.ReportTypeDelay, models.SeverityHigh, testNow.Add(-24*time.Hour)))

	code, envelope := getJSON(t, server, "/api/v1/efficiency/r1?key=TEST")

	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, "r1", entry["routeId"])
	assert.Equal(t, float64(1), entry["reportCount"])
	for _, factor := range []string{"reliability", "speed", "safety", "comfort", "cost", "frequency", "overall"} {
		value, ok := entry[factor].(float64)
		require.True(t, ok, "factor %s should be numeric", factor)
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 100.0)
	}
}

func TestEfficiencyHandlerUnknownRouteReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	code, _ := getJSON(t, server, "/api/v1/efficiency/ghost?key=TEST")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTravelTimeHandlerPredictsBetweenStops(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	code, envelope := getJSON(t, server, "/api/v1/travel-time/r1?key=TEST&from=Central&to=Airport")

	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, "Central", entry["fromStop"])
	assert.Equal(t, "Airport", entry["toStop"])
	predicted := entry["predictedMinutes"].(float64)
	assert.Greater(t, predicted, 0.0)
	assert.LessOrEqual(t, entry["optimisticMinutes"].(float64), predicted)
	assert.GreaterOrEqual(t, entry["pessimisticMinutes"].(float64), predicted)
}

func TestTravelTimeHandlerValidatesQuery(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	tests := []struct {
		name  string
		query string
	}{
		{"missing from", "to=Airport"},
		{"missing to", "from=Central"},
		{"bad timestamp", "from=Central&to=Airport&at=yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := getJSON(t, server, "/api/v1/travel-time/r1?key=TEST&"+tt.query)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}
}

func TestTravelTimeHandlerStopNotOnRouteReturns404(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	code, _ := getJSON(t, server, "/api/v1/travel-time/r1?key=TEST&from=Central&to=Nowhere")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTrendsHandlerDefaultsToWeekly(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	seedReport(t, client, verifiedReport("r1", models.ReportTypeDelay, models.SeverityLow, testNow.Add(-48*time.Hour)))

	code, envelope := getJSON(t, server, "/api/v1/trends/r1?key=TEST")

	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, string(models.PeriodWeekly), entry["period"])
}

func TestTrendsHandlerRejectsUnknownPeriod(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	code, _ := getJSON(t, server, "/api/v1/trends/r1?key=TEST&period=hourly")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDemandHandlerForecastsSlot(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	morning := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	seedReport(t, client, verifiedReport("r1", models.ReportTypeCrowding, models.SeverityMedium, morning))

	code, envelope := getJSON(t, server, "/api/v1/demand/r1?key=TEST&slot=morning")

	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, "morning", entry["timeSlot"])
	assert.Greater(t, entry["demand"].(float64), 0.0)
}

func TestDemandHandlerRejectsMissingOrUnknownSlot(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	for _, query := range []string{"", "&slot=brunch"} {
		code, _ := getJSON(t, server, "/api/v1/demand/r1?key=TEST"+query)
		assert.Equal(t, http.StatusBadRequest, code)
	}
}

func TestAlternativesHandlerFindsServingRoutes(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	seedRoute(t, client, testRoute("r2"))

	code, envelope := getJSON(t, server, "/api/v1/alternatives?key=TEST&from=Central&to=Airport")

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, listOf(t, envelope), 2)
}

func TestAlternativesHandlerValidatesFilters(t *testing.T) {
	server, _ := newTestServer(t)

	code, _ := getJSON(t, server, "/api/v1/alternatives?key=TEST&from=Central&to=Airport&maxTime=-3")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = getJSON(t, server, "/api/v1/alternatives?key=TEST&from=Central&to=Airport&maxCost=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRecommendationsHandlerRanksActiveRoutes(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	code, envelope := getJSON(t, server, "/api/v1/recommendations/user-1?key=TEST")

	require.Equal(t, http.StatusOK, code)
	list := listOf(t, envelope)
	require.NotEmpty(t, list)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "r1", first["routeId"])
	assert.NotEmpty(t, first["reason"])
}
