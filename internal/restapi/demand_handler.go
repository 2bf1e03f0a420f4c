package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

func (api *RestAPI) demandHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	slot := models.TimeSlot(r.URL.Query().Get("slot"))

	forecast, err := api.Analyzer.ForecastDemand(r.Context(), id, slot)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(forecast, api.Clock))
}
