package restapi

import (
	"net/http"

	"transitpulse.org/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if err := api.ScoreDB.DB.PingContext(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	data := map[string]interface{}{
		"status": status,
		"env":    api.Config.Env.String(),
	}
	api.sendResponse(w, r, models.NewResponse(code, data, status, api.Clock))
}
