package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

func (api *RestAPI) efficiencyHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	score, err := api.Analyzer.Efficiency(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(score, api.Clock))
}
