package handler

import (
	"net/http"

	"formsight/internal/service"

	"github.com/gorilla/mux"
)

// StatsHandler serves per-form summaries
type StatsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(analyticsSvc *service.AnalyticsService) *StatsHandler {
	return &StatsHandler{analyticsSvc: analyticsSvc}
}

// Get handles GET /v1/forms/{formId}/stats
//
// @Summary  Per-question statistics
// @Tags     stats
// @Produce  json
// @Param    formId path string true "form id"
// @Success  200 {object} model.Summary
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/stats [get]
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.Summary(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
