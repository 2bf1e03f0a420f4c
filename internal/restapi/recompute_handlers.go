package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

// recomputeHandler triggers a full scoring sweep. When a sweep is
// already in flight the trigger is dropped and the caller is told so;
// it is never queued.
func (api *RestAPI) recomputeHandler(w http.ResponseWriter, r *http.Request) {
	summaries, ran := api.Scheduler.RunFullRecompute(r.Context())
	if !ran {
		api.sendResponse(w, r, models.NewResponse(http.StatusConflict, nil,
			"a recomputation sweep is already in progress", api.Clock))
		return
	}

	data := map[string]interface{}{
		"routesProcessed": len(summaries),
		"summaries":       summaries,
	}
	api.sendResponse(w, r, models.NewResponse(http.StatusOK, data, "sweep completed", api.Clock))
}

// recomputeRouteHandler recomputes a single route immediately.
func (api *RestAPI) recomputeRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	vector, err := api.Scheduler.RecomputeRoute(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(vector, api.Clock))
}
