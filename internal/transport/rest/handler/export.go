package handler

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"formsight/internal/service"
	"formsight/internal/survey"

	"github.com/gorilla/mux"
)

// ExportHandler serves downloads and archived exports
type ExportHandler struct {
	exportSvc *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportSvc *service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// splitIDs reads a comma separated id list, ignoring blanks
func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseDelimiter(raw string) (rune, error) {
	switch raw {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(raw)
	if size != len(raw) {
		return 0, &survey.ValidationError{Fields: []survey.FieldError{
			{Field: "delimiter", Message: fmt.Sprintf("%q must be a single character", raw)},
		}}
	}
	return r, nil
}

func writeArtifact(w http.ResponseWriter, a *service.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(a.Content)
}

// CSV handles GET /v1/forms/{formId}/export.csv
//
// @Summary  Download responses as a delimited table
// @Tags     exports
// @Produce  text/csv
// @Param    formId path string true "form id"
// @Param    delimiter query string false "cell delimiter, one character or \"tab\""
// @Param    ids query string false "comma separated submission ids"
// @Success  200 {file} file
// @Failure  404 {object} ErrorResponse
// @Failure  422 {object} ErrorResponse
// @Router   /forms/{formId}/export.csv [get]
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	delimiter, err := parseDelimiter(q.Get("delimiter"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	artifact, err := h.exportSvc.Table(r.Context(), mux.Vars(r)["formId"], splitIDs(q.Get("ids")), delimiter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeArtifact(w, artifact)
}

// TXT handles GET /v1/forms/{formId}/export.txt
//
// @Summary  Download the plain-text report
// @Tags     exports
// @Produce  plain
// @Param    formId path string true "form id"
// @Success  200 {file} file
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/export.txt [get]
func (h *ExportHandler) TXT(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.exportSvc.Report(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeArtifact(w, artifact)
}

// Archive handles POST /v1/forms/{formId}/exports?format=csv|txt
//
// @Summary  Store an export in archive storage
// @Tags     exports
// @Produce  json
// @Param    formId path string true "form id"
// @Param    format query string false "csv (default) or txt"
// @Param    ids query string false "comma separated submission ids, csv only"
// @Success  201 {object} service.ArchiveResult
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/exports [post]
func (h *ExportHandler) Archive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.exportSvc.Archive(r.Context(), mux.Vars(r)["formId"], q.Get("format"), splitIDs(q.Get("ids")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// DeleteArchive handles DELETE /v1/forms/{formId}/exports/{archiveId}
//
// @Summary  Remove an archived export
// @Tags     exports
// @Param    formId path string true "form id"
// @Param    archiveId path string true "archive id returned on creation"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /forms/{formId}/exports/{archiveId} [delete]
func (h *ExportHandler) DeleteArchive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.exportSvc.DeleteArchive(r.Context(), vars["formId"], vars["archiveId"]); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
