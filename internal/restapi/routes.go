package restapi

import (
	"net/http"

	"transitpulse.org/internal/metrics"
)

// rateLimitAndValidateAPIKey combines API key validation, rate
// limiting, and compression into the standard read-path chain.
func rateLimitAndValidateAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	compressedHandler := CompressionMiddleware(finalHandler)

	var rateLimitedHandler http.Handler
	if api.rateLimiter != nil {
		rateLimitedHandler = api.rateLimiter.Handler()(compressedHandler)
	} else {
		// Fallback for tests that don't use NewRestAPI constructor
		rateLimitedHandler = compressedHandler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		rateLimitedHandler.ServeHTTP(w, r)
	})
}

// requireAdminAPIKey gates recomputation triggers and report moderation
// behind the administrative key set.
func requireAdminAPIKey(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAdminAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers all API endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health and metrics endpoints carry no authentication.
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("GET /api/v1/routes", rateLimitAndValidateAPIKey(api, api.routesHandler))
	mux.Handle("GET /api/v1/route/{id}", rateLimitAndValidateAPIKey(api, api.routeHandler))
	mux.Handle("GET /api/v1/route/{id}/reports", rateLimitAndValidateAPIKey(api, api.routeReportsHandler))

	mux.Handle("GET /api/v1/scores", rateLimitAndValidateAPIKey(api, api.scoresHandler))
	mux.Handle("GET /api/v1/score/{id}", rateLimitAndValidateAPIKey(api, api.scoreHandler))

	mux.Handle("POST /api/v1/report", rateLimitAndValidateAPIKey(api, api.createReportHandler))
	mux.Handle("POST /api/v1/report/{id}/status", requireAdminAPIKey(api, api.reportStatusHandler))

	mux.Handle("POST /api/v1/recompute", requireAdminAPIKey(api, api.recomputeHandler))
	mux.Handle("POST /api/v1/recompute/{id}", requireAdminAPIKey(api, api.recomputeRouteHandler))

	mux.Handle("GET /api/v1/efficiency/{id}", rateLimitAndValidateAPIKey(api, api.efficiencyHandler))
	mux.Handle("GET /api/v1/travel-time/{id}", rateLimitAndValidateAPIKey(api, api.travelTimeHandler))
	mux.Handle("GET /api/v1/alternatives", rateLimitAndValidateAPIKey(api, api.alternativesHandler))
	mux.Handle("GET /api/v1/trends/{id}", rateLimitAndValidateAPIKey(api, api.trendsHandler))
	mux.Handle("GET /api/v1/demand/{id}", rateLimitAndValidateAPIKey(api, api.demandHandler))
	mux.Handle("GET /api/v1/recommendations/{userId}", rateLimitAndValidateAPIKey(api, api.recommendationsHandler))
}
