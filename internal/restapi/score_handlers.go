package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

func (api *RestAPI) scoresHandler(w http.ResponseWriter, r *http.Request) {
	scores, err := api.ScoreDB.Queries.ListScores(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if scores == nil {
		scores = []models.ScoreVector{}
	}
	api.sendResponse(w, r, models.NewListResponse(scores, api.Clock))
}

// scoreHandler returns the persisted score record for a route. A route
// that has never been swept has no record and returns 404 rather than
// an implicit perfect score.
func (api *RestAPI) scoreHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	vector, err := api.ScoreDB.Queries.GetScore(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(vector, api.Clock))
}
