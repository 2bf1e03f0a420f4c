package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeSweepPublishesScores(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	seedRoute(t, client, testRoute("r2"))

	code, _ := getJSON(t, server, "/api/v1/score/r1?key=TEST")
	require.Equal(t, http.StatusNotFound, code, "no score before the first sweep")

	code, envelope := postJSON(t, server, "/api/v1/recompute?key=ADMIN", "")
	require.Equal(t, http.StatusOK, code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["routesProcessed"])

	code, envelope = getJSON(t, server, "/api/v1/score/r1?key=TEST")
	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, 0.0, entry["overall"], "no verified reports means no synthetic score")
	assert.Equal(t, float64(0), entry["totalReports"])
}

func TestRecomputeRequiresAdminKey(t *testing.T) {
	server, _ := newTestServer(t)

	code, _ := postJSON(t, server, "/api/v1/recompute?key=TEST", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRecomputeRouteReflectsVerifiedReports(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))

	_, created := postJSON(t, server, "/api/v1/report?key=TEST",
		`{"routeId":"r1","type":"safety","severity":"critical"}`)
	reportID := entryOf(t, created)["id"].(string)

	// Still pending: the recompute must ignore it.
	code, envelope := postJSON(t, server, "/api/v1/recompute/r1?key=ADMIN", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, entryOf(t, envelope)["overall"])

	code, _ = postJSON(t, server, "/api/v1/report/"+reportID+"/status?key=ADMIN",
		`{"status":"verified"}`)
	require.Equal(t, http.StatusOK, code)

	code, envelope = postJSON(t, server, "/api/v1/recompute/r1?key=ADMIN", "")
	require.Equal(t, http.StatusOK, code)
	entry := entryOf(t, envelope)
	assert.Equal(t, 3.0, entry["safety"])
	assert.Equal(t, 4.5, entry["overall"])
	assert.Equal(t, float64(1), entry["totalReports"])
}

func TestRecomputeRouteUnknownRouteReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	code, _ := postJSON(t, server, "/api/v1/recompute/ghost?key=ADMIN", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestScoresHandlerListsAllRecords(t *testing.T) {
	server, client := newTestServer(t)
	seedRoute(t, client, testRoute("r1"))
	seedRoute(t, client, testRoute("r2"))

	code, _ := postJSON(t, server, "/api/v1/recompute?key=ADMIN", "")
	require.Equal(t, http.StatusOK, code)

	code, envelope := getJSON(t, server, "/api/v1/scores?key=TEST")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, listOf(t, envelope), 2)
}
