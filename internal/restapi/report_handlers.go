package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"transitpulse.org/internal/models"
	"transitpulse.org/internal/utils"
)

type createReportRequest struct {
	RouteID     string   `json:"routeId"`
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

const maxReportBodyBytes = 64 * 1024

// createReportHandler accepts a rider incident report. New reports
// always enter moderation as pending; nothing a rider submits can move
// a published score until a moderator verifies it.
func (api *RestAPI) createReportHandler(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"malformed JSON body"}})
		return
	}

	fieldErrors := map[string][]string{}
	if err := utils.ValidateID(req.RouteID); err != nil {
		fieldErrors["routeId"] = []string{err.Error()}
	}
	if !models.ValidReportType(models.ReportType(req.Type)) {
		fieldErrors["type"] = []string{fmt.Sprintf("unknown report type %q", req.Type)}
	}
	if !models.ValidSeverity(models.Severity(req.Severity)) {
		fieldErrors["severity"] = []string{fmt.Sprintf("unknown severity %q", req.Severity)}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if _, err := api.ScoreDB.Queries.GetRoute(r.Context(), req.RouteID); err != nil {
		api.sendError(w, r, err)
		return
	}

	report := models.Report{
		ID:          uuid.NewString(),
		RouteID:     req.RouteID,
		Type:        models.ReportType(req.Type),
		Severity:    models.Severity(req.Severity),
		Status:      models.StatusPending,
		Description: req.Description,
		Lat:         req.Lat,
		Lon:         req.Lon,
		CreatedAt:   api.Clock.Now(),
	}

	created, err := api.ScoreDB.Queries.CreateReport(r.Context(), report)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	data := map[string]interface{}{"entry": created}
	api.sendResponse(w, r, models.NewResponse(http.StatusCreated, data, "report created", api.Clock))
}

type updateReportStatusRequest struct {
	Status string `json:"status"`
}

// reportStatusHandler moves a report through moderation. Status changes
// take effect at the next recomputation; the stored score is not
// touched here.
func (api *RestAPI) reportStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	var req updateReportStatusRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"malformed JSON body"}})
		return
	}

	status := models.ReportStatus(req.Status)
	if !models.ValidReportStatus(status) {
		api.validationErrorResponse(w, r, map[string][]string{
			"status": {fmt.Sprintf("unknown status %q", req.Status)},
		})
		return
	}

	updated, err := api.ScoreDB.Queries.UpdateReportStatus(r.Context(), id, status)
	if err != nil {
		api.sendError(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(updated, api.Clock))
}

// routeReportsHandler lists the full report history for a route,
// regardless of moderation status.
func (api *RestAPI) routeReportsHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	if _, err := api.ScoreDB.Queries.GetRoute(r.Context(), id); err != nil {
		api.sendError(w, r, err)
		return
	}

	reports, err := api.ScoreDB.Queries.ListReportsByRoute(r.Context(), id, 0)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	api.sendResponse(w, r, models.NewListResponse(reports, api.Clock))
}
