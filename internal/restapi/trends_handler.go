package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

// trendsHandler compares the current reporting window against the one
// before it. period defaults to weekly.
func (api *RestAPI) trendsHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	period := models.TrendPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = models.PeriodWeekly
	}

	analysis, err := api.Analyzer.AnalyzeTrends(r.Context(), id, period)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(analysis, api.Clock))
}
