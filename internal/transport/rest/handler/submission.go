package handler

import (
	"net/http"

	"formsight/internal/service"

	"github.com/gorilla/mux"
)

// SubmissionHandler handles respondent and response-management endpoints
type SubmissionHandler struct {
	subSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(subSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc}
}

// DeleteBatchRequest is the request body for deleting several submissions
type DeleteBatchRequest struct {
	IDs []string `json:"ids"`
}

// Present handles GET /v1/forms/{formId}/presentation
//
// @Summary  Render a form for one respondent
// @Description Quiz options come back shuffled; pass the returned id when submitting.
// @Tags     submissions
// @Produce  json
// @Param    formId path string true "form id"
// @Success  200 {object} model.Presentation
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/presentation [get]
func (h *SubmissionHandler) Present(w http.ResponseWriter, r *http.Request) {
	p, err := h.subSvc.Present(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Submit handles POST /v1/forms/{formId}/submissions
//
// @Summary  Submit responses
// @Tags     submissions
// @Accept   json
// @Produce  json
// @Param    formId path string true "form id"
// @Param    body body service.SubmitRequest true "responses keyed by question name"
// @Success  201 {object} model.Submission
// @Failure  404 {object} ErrorResponse
// @Failure  410 {object} ErrorResponse "presentation already used or expired"
// @Failure  422 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse
// @Router   /forms/{formId}/submissions [post]
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.subSvc.Submit(r.Context(), mux.Vars(r)["formId"], req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /v1/forms/{formId}/submissions
//
// @Summary  List submissions, newest first
// @Tags     submissions
// @Produce  json
// @Param    formId path string true "form id"
// @Success  200 {object} map[string][]model.Submission
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/submissions [get]
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subSvc.List(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// Delete handles DELETE /v1/forms/{formId}/submissions/{submissionId}
//
// @Summary  Delete one submission
// @Tags     submissions
// @Param    formId path string true "form id"
// @Param    submissionId path string true "submission id"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/submissions/{submissionId} [delete]
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.subSvc.Delete(r.Context(), vars["formId"], vars["submissionId"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBatch handles POST /v1/forms/{formId}/submissions/delete
//
// @Summary  Delete several submissions
// @Description Each id is deleted independently; the response lists every outcome.
// @Tags     submissions
// @Accept   json
// @Produce  json
// @Param    formId path string true "form id"
// @Param    body body DeleteBatchRequest true "submission ids"
// @Success  200 {object} map[string][]service.DeleteResult
// @Router   /forms/{formId}/submissions/delete [post]
func (h *SubmissionHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req DeleteBatchRequest
	if err := decodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids are required")
		return
	}

	results := h.subSvc.DeleteMany(r.Context(), mux.Vars(r)["formId"], req.IDs)
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
