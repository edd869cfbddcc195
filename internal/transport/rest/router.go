package rest

import (
	"net/http"

	_ "formsight/docs"
	"formsight/internal/config"
	"formsight/internal/service"
	"formsight/internal/storage"
	"formsight/internal/transport/rest/handler"
	"formsight/internal/transport/rest/middleware"
	"formsight/internal/transport/ws"
	"formsight/pkg/monitoring"
	"formsight/pkg/tracing"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	FormService       *service.FormService
	SubmissionService *service.SubmissionService
	AnalyticsService  *service.AnalyticsService
	ExportService     *service.ExportService
	WSHub             *ws.Hub
	// SubmitLimiter throttles public submissions per client IP; nil disables it
	SubmitLimiter *middleware.RateLimiter
	CORS          config.CORSConfig
	// Archives serves locally stored exports; nil when archives live elsewhere
	Archives http.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	formHandler := handler.NewFormHandler(c.FormService)
	submissionHandler := handler.NewSubmissionHandler(c.SubmissionService)
	statsHandler := handler.NewStatsHandler(c.AnalyticsService)
	exportHandler := handler.NewExportHandler(c.ExportService)
	wsHandler := ws.NewHandler(c.WSHub, c.FormService)

	// CORS first so preflight requests never reach the rest of the chain
	r.Use(middleware.CORS(c.CORS))
	r.Use(middleware.RequestID)
	r.Use(tracing.Middleware)
	r.Use(monitoring.Middleware)
	r.Use(middleware.Logging)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", monitoring.Handler()).Methods("GET")
	r.HandleFunc("/swagger/doc.json", serveSwagger).Methods("GET")
	if c.Archives != nil {
		r.PathPrefix(storage.LocalURLPrefix).Handler(c.Archives).Methods("GET")
	}

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/forms/{formId}", formHandler.Delete).Methods("DELETE", "OPTIONS")

	// Respondent routes
	var submit http.Handler = http.HandlerFunc(submissionHandler.Submit)
	if c.SubmitLimiter != nil {
		submit = c.SubmitLimiter.Middleware(submit)
	}
	v1.HandleFunc("/forms/{formId}/presentation", submissionHandler.Present).Methods("GET", "OPTIONS")
	v1.Handle("/forms/{formId}/submissions", submit).Methods("POST", "OPTIONS")

	// Response management
	v1.HandleFunc("/forms/{formId}/submissions", submissionHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/submissions/delete", submissionHandler.DeleteBatch).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/submissions/{submissionId}", submissionHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/stats", statsHandler.Get).Methods("GET", "OPTIONS")

	// Exports
	v1.HandleFunc("/forms/{formId}/export.csv", exportHandler.CSV).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/export.txt", exportHandler.TXT).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/exports", exportHandler.Archive).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forms/{formId}/exports/{archiveId}", exportHandler.DeleteArchive).Methods("DELETE", "OPTIONS")

	// Dashboard websocket
	v1.HandleFunc("/ws/forms/{formId}", wsHandler.FormWS).Methods("GET")

	return r
}

func serveSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"api docs unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
