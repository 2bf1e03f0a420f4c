package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

func (api *RestAPI) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if err := utils.ValidateID(userID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"userId": {err.Error()}})
		return
	}

	recommendations, err := api.Analyzer.RecommendForUser(r.Context(), userID)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	if recommendations == nil {
		recommendations = []models.UserRecommendation{}
	}
	api.sendResponse(w, r, models.NewListResponse(recommendations, api.Clock))
}
