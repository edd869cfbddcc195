package handler

import (
	"net/http"

	"formsight/internal/model"
	"formsight/internal/service"

	"github.com/gorilla/mux"
)

// FormHandler handles form authoring endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// FormRequest is the request body for creating or replacing a form
type FormRequest struct {
	OwnerID     string       `json:"ownerId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	IsQuiz      bool         `json:"isQuiz"`
	Pages       []model.Page `json:"pages"`
}

func (req FormRequest) form() *model.Form {
	return &model.Form{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		IsQuiz:      req.IsQuiz,
		Pages:       req.Pages,
	}
}

// Create handles POST /v1/forms
//
// @Summary  Create a form
// @Tags     forms
// @Accept   json
// @Produce  json
// @Param    body body FormRequest true "form definition"
// @Success  201 {object} model.Form
// @Failure  422 {object} ErrorResponse
// @Router   /forms [post]
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.formSvc.Create(r.Context(), req.form())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, form)
}

// List handles GET /v1/forms?ownerId=
//
// @Summary  List the forms of an owner
// @Tags     forms
// @Produce  json
// @Param    ownerId query string true "owner id"
// @Success  200 {object} map[string][]model.Form
// @Router   /forms [get]
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "ownerId is required")
		return
	}

	forms, err := h.formSvc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Get handles GET /v1/forms/{formId}
//
// @Summary  Get a form with its answer key
// @Tags     forms
// @Produce  json
// @Param    formId path string true "form id"
// @Success  200 {object} model.Form
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId} [get]
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.formSvc.Get(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /v1/forms/{formId}
//
// @Summary  Replace a form definition
// @Tags     forms
// @Accept   json
// @Produce  json
// @Param    formId path string true "form id"
// @Param    body body FormRequest true "form definition"
// @Success  200 {object} model.Form
// @Failure  404 {object} ErrorResponse
// @Failure  422 {object} ErrorResponse
// @Router   /forms/{formId} [put]
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := req.form()
	form.ID = mux.Vars(r)["formId"]
	updated, err := h.formSvc.Update(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/forms/{formId}
//
// @Summary  Delete a form
// @Tags     forms
// @Param    formId path string true "form id"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId} [delete]
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.formSvc.Delete(r.Context(), mux.Vars(r)["formId"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
