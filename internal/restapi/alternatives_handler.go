package restapi

import (
	"net/http"
	"strconv"

	"transitpulse.org/internal/models"
)

// alternativesHandler ranks the active routes serving both requested
// stops. maxTime (minutes) and maxCost (fare) are optional filters.
func (api *RestAPI) alternativesHandler(w http.ResponseWriter, r *http.Request) {
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

	var maxTime *int
	if raw := query.Get("maxTime"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			fieldErrors["maxTime"] = []string{"maxTime must be a positive integer"}
		} else {
			maxTime = &parsed
		}
	}

	var maxCost *float64
	if raw := query.Get("maxCost"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			fieldErrors["maxCost"] = []string{"maxCost must be a non-negative number"}
		} else {
			maxCost = &parsed
		}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	alternatives, err := api.Analyzer.FindAlternatives(r.Context(), fromStop, toStop, maxTime, maxCost)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	if alternatives == nil {
		alternatives = []models.AlternativeRoute{}
	}
	api.sendResponse(w, r, models.NewListResponse(alternatives, api.Clock))
}
