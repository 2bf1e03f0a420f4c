package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"transitpulse.org/internal/analytics"
	"transitpulse.org/internal/logging"
	"transitpulse.org/internal/metrics"
	"transitpulse.org/internal/models"
	"transitpulse.org/scoredb"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)
	metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(response.Code)).Inc()

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err,
			slog.String("path", r.URL.Path))
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found", api.Clock))
}

func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	data := map[string]interface{}{"fieldErrors": fieldErrors}
	api.sendResponse(w, r, models.NewResponse(http.StatusBadRequest, data, "invalid request", api.Clock))
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "internal server error", err,
		slog.String("path", r.URL.Path))
	api.sendResponse(w, r, models.NewResponse(http.StatusInternalServerError, nil, "internal server error", api.Clock))
}

func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusUnauthorized, nil, "permission denied", api.Clock))
}

// sendError maps core errors onto HTTP envelopes: unknown resources
// and stops map to 404, malformed query buckets to 400, everything
// else to 500.
func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, scoredb.ErrNotFound), errors.Is(err, analytics.ErrStopNotFound):
		api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, err.Error(), api.Clock))
	case errors.Is(err, analytics.ErrInvalidPeriod), errors.Is(err, analytics.ErrInvalidTimeSlot):
		api.sendResponse(w, r, models.NewResponse(http.StatusBadRequest, nil, err.Error(), api.Clock))
	default:
		api.serverErrorResponse(w, r, err)
	}
}
