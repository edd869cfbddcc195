package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"formsight/internal/service"
	"formsight/internal/survey"
	"formsight/pkg/logger"

	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []survey.FieldError `json:"fields,omitempty"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps service errors onto status codes. Storage failures are logged
// and answered with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *survey.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrFormNotFound), errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrArchiveNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPresentationNotFound):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
