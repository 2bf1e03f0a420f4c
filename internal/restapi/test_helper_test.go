package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transitpulse.org/internal/analytics"
	"transitpulse.org/internal/app"
	"transitpulse.org/internal/appconf"
	"transitpulse.org/internal/clock"
	"transitpulse.org/internal/models"
	"transitpulse.org/internal/scoring"
	"transitpulse.org/scoredb"
)

var testNow = time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)

// newTestAPI builds a fully wired API over a throwaway SQLite file.
func newTestAPI(t *testing.T) (*RestAPI, *scoredb.Client) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "scores.db")
	client, err := scoredb.NewClient(scoredb.NewConfig(dbPath, appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	fakeClock := clock.NewFakeClock(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	aggregator := scoring.NewAggregator(scoring.DefaultWeights())
	scheduler := scoring.NewScheduler(client.Queries, aggregator, fakeClock, logger, time.Hour)
	analyzer := analytics.NewAnalyzer(client.Queries, fakeClock, analytics.DefaultConfig(), logger)

	testApp := &app.Application{
		Config: appconf.Config{
			Name:         "transitpulse-test",
			Env:          appconf.Test,
			ApiKeys:      []string{"TEST"},
			AdminApiKeys: []string{"ADMIN"},
			RateLimit:    100,
		},
		Logger:    logger,
		Clock:     fakeClock,
		ScoreDB:   client,
		Scheduler: scheduler,
		Analyzer:  analyzer,
	}

	return NewRestAPI(testApp), client
}

// newTestServer registers the full route table so middleware and path
// patterns are exercised the same way production traffic sees them.
func newTestServer(t *testing.T) (*httptest.Server, *scoredb.Client) {
	t.Helper()

	api, client := newTestAPI(t)
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	server := httptest.NewServer(api.WithSecurityHeaders(mux))
	t.Cleanup(server.Close)
	return server, client
}

func seedRoute(t *testing.T, client *scoredb.Client, route models.Route) {
	t.Helper()
	require.NoError(t, client.Queries.CreateRoute(context.Background(), route))
}

func seedReport(t *testing.T, client *scoredb.Client, report models.Report) {
	t.Helper()
	_, err := client.Queries.CreateReport(context.Background(), report)
	require.NoError(t, err)
}

func testRoute(id string) models.Route {
	return models.Route{
		ID:                 id,
		Name:               "Route " + id,
		Fare:               25,
		OperatingStartHour: 6,
		OperatingEndHour:   22,
		IsActive:           true,
		Stops: []models.Stop{
			{Name: "Central", Lat: 47.6062, Lon: -122.3321},
			{Name: "Midtown", Lat: 47.6150, Lon: -122.3400},
			{Name: "Airport", Lat: 47.4502, Lon: -122.3088},
		},
	}
}

func getJSON(t *testing.T, server *httptest.Server, path string) (int, models.ResponseModel) {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var envelope models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func postJSON(t *testing.T, server *httptest.Server, path, body string) (int, models.ResponseModel) {
	t.Helper()

	resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var envelope models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func entryOf(t *testing.T, envelope models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok, "envelope data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "envelope data should contain an entry")
	return entry
}

func listOf(t *testing.T, envelope models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok, "envelope data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "envelope data should contain a list")
	return list
}
