package restapi

import (
	"net/http"
	"time"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

// travelTimeHandler predicts minutes between two stops on a route.
// The optional at parameter is RFC 3339; absent means now.
func (api *RestAPI) travelTimeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	query := r.URL.Query()
	fromStop := query.Get("from")
	toStop := query.Get("to")

	fieldErrors := map[string][]string{}
	if fromStop == "" {
		fieldErrors["from"] = []string{"from stop is required"}
	}
	if toStop == "" {
		fieldErrors["to"] = []string{"to stop is required"}
	}

	var at *time.Time
	if raw := query.Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrors["at"] = []string{"at must be an RFC 3339 timestamp"}
		} else {
			at = &parsed
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	prediction, err := api.Analyzer.PredictTravelTime(r.Context(), id, fromStop, toStop, at)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(prediction, api.Clock))
}
