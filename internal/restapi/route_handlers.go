package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := api.ScoreDB.Queries.ListRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	api.sendResponse(w, r, models.NewListResponse(routes, api.Clock))
}

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	route, err := api.ScoreDB.Queries.GetRoute(r.Context(), id)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(route, api.Clock))
}
