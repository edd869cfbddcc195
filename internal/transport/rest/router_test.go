package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"formsight/internal/cache"
	"formsight/internal/config"
	"formsight/internal/repository"
	"formsight/internal/service"
	"formsight/internal/storage"
	"formsight/internal/transport/rest/middleware"
	"formsight/internal/transport/ws"
)

type testServer struct {
	handler http.Handler
	limiter *middleware.RateLimiter
}

func newTestServer(t *testing.T, submitsPerMinute int) *testServer {
	t.Helper()
	forms := repository.NewMemoryFormRepo()
	subs := repository.NewMemorySubmissionRepo()
	archive, err := storage.NewLocalProvider(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalProvider: %v", err)
	}

	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	analytics := service.NewAnalyticsService(forms, subs, cache.NewMemoryStatsCache(time.Hour))
	analytics.SetBroadcaster(hub)
	subSvc := service.NewSubmissionService(forms, subs, cache.NewMemoryPresentationCache(time.Hour), service.SubmissionOptions{Precision: 4})
	subSvc.SetAnalyticsService(analytics)
	subSvc.SetBroadcaster(hub)

	limiter := middleware.NewRateLimiter(submitsPerMinute, time.Minute)
	t.Cleanup(limiter.Stop)

	return &testServer{
		limiter: limiter,
		handler: NewRouter(&Container{
			FormService:       service.NewFormService(forms),
			SubmissionService: subSvc,
			AnalyticsService:  analytics,
			ExportService:     service.NewExportService(forms, subs, archive, service.ExportOptions{}),
			WSHub:             hub,
			SubmitLimiter:     limiter,
			CORS:              config.CORSConfig{AllowedOrigins: "https://forms.example.com"},
			Archives:          archive.Handler(),
		}),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

var quizBody = map[string]interface{}{
	"ownerId": "owner-1",
	"title":   "Capitals",
	"isQuiz":  true,
	"pages": []interface{}{map[string]interface{}{
		"questions": []interface{}{
			map[string]interface{}{
				"type": "multiple_choice", "title": "Capital of France", "isRequired": true,
				"options": []string{"Berlin", "Paris", "Rome"}, "correctAnswers": []int{1},
			},
			map[string]interface{}{"type": "short_text", "title": "Comment"},
		},
	}},
}

func createForm(t *testing.T, s *testServer) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/forms", quizBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create form: %d %s", rec.Code, rec.Body.String())
	}
	var form struct {
		ID string `json:"id"`
	}
	decode(t, rec, &form)
	return form.ID
}

func TestHealthMetricsAndDocs(t *testing.T) {
	s := newTestServer(t, 10)
	for _, path := range []string{"/health", "/metrics", "/swagger/doc.json"} {
		rec := s.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
	rec := s.do(t, http.MethodGet, "/swagger/doc.json", nil)
	if !strings.Contains(rec.Body.String(), `"title": "formsight API"`) {
		t.Fatalf("unexpected docs %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, 10)
	rec := s.do(t, http.MethodOptions, "/v1/forms", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://forms.example.com" {
		t.Fatalf("unexpected origin header %q", got)
	}
}

func TestFormLifecycle(t *testing.T) {
	s := newTestServer(t, 10)
	id := createForm(t, s)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/v1/forms/" + id, http.StatusOK},
		{http.MethodGet, "/v1/forms?ownerId=owner-1", http.StatusOK},
		{http.MethodGet, "/v1/forms", http.StatusBadRequest},
		{http.MethodGet, "/v1/forms/000000000000000000000000", http.StatusNotFound},
		{http.MethodGet, "/v1/forms/" + id + "/stats", http.StatusOK},
		{http.MethodDelete, "/v1/forms/" + id, http.StatusNoContent},
		{http.MethodGet, "/v1/forms/" + id, http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := s.do(t, tc.method, tc.path, nil)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: got %d want %d (%s)", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
		}
	}

	rec := s.do(t, http.MethodPost, "/v1/forms", map[string]interface{}{"title": "no pages"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid form: status %d", rec.Code)
	}
}

func TestSubmitFlow(t *testing.T) {
	s := newTestServer(t, 10)
	id := createForm(t, s)

	rec := s.do(t, http.MethodGet, "/v1/forms/"+id+"/presentation", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("presentation: %d", rec.Code)
	}
	var p struct {
		ID    string `json:"id"`
		Pages []struct {
			Questions []struct {
				CorrectAnswers []int `json:"correctAnswers"`
			} `json:"questions"`
		} `json:"pages"`
	}
	decode(t, rec, &p)
	for _, q := range p.Pages[0].Questions {
		if len(q.CorrectAnswers) != 0 {
			t.Fatalf("presentation leaks the answer key")
		}
	}

	submit := map[string]interface{}{"presentationId": p.ID, "responses": map[string]interface{}{"q1": "Paris"}}
	rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions", submit)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	var sub struct {
		ID         string  `json:"id"`
		TotalScore float64 `json:"totalScore"`
	}
	decode(t, rec, &sub)
	if sub.TotalScore != 1 {
		t.Fatalf("score %v", sub.TotalScore)
	}

	rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions", submit)
	if rec.Code != http.StatusGone {
		t.Fatalf("reused presentation: %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions", map[string]interface{}{"responses": map[string]interface{}{"q1": 4}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit: %d", rec.Code)
	}
	var verr struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	decode(t, rec, &verr)
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "q1" {
		t.Fatalf("unexpected field errors %s", rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/forms/"+id+"/export.csv?delimiter=%3B&ids="+sub.ID, nil)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("csv: %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), ";Paris;") {
		t.Fatalf("unexpected csv %q", rec.Body.String())
	}
	if rec = s.do(t, http.MethodGet, "/v1/forms/"+id+"/export.csv?delimiter=%3B%3B", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad delimiter: %d", rec.Code)
	}
	if rec = s.do(t, http.MethodGet, "/v1/forms/"+id+"/export.txt", nil); rec.Code != http.StatusOK {
		t.Fatalf("txt: %d", rec.Code)
	}
	rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/exports?format=txt", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("archive: %d %s", rec.Code, rec.Body.String())
	}
	var archived service.ArchiveResult
	decode(t, rec, &archived)
	if rec = s.do(t, http.MethodGet, archived.URL, nil); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Paris") {
		t.Fatalf("archived file %s: %d %q", archived.URL, rec.Code, rec.Body.String())
	}
	if rec = s.do(t, http.MethodDelete, "/v1/forms/"+id+"/exports/"+archived.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete archive: %d %s", rec.Code, rec.Body.String())
	}
	if rec = s.do(t, http.MethodGet, archived.URL, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted archive still served: %d", rec.Code)
	}
	if rec = s.do(t, http.MethodDelete, "/v1/forms/"+id+"/exports/"+archived.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete archive twice: %d", rec.Code)
	}
	if rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/exports?format=xlsx", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("archive format: %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions/delete", map[string]interface{}{"ids": []string{sub.ID, "missing"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("batch delete: %d", rec.Code)
	}
	var batch struct {
		Results []service.DeleteResult `json:"results"`
	}
	decode(t, rec, &batch)
	if len(batch.Results) != 2 || !batch.Results[0].Deleted || batch.Results[1].Deleted {
		t.Fatalf("unexpected results %+v", batch.Results)
	}
	if rec = s.do(t, http.MethodDelete, "/v1/forms/"+id+"/submissions/"+sub.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete twice: %d", rec.Code)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	s := newTestServer(t, 1)
	id := createForm(t, s)
	body := map[string]interface{}{"responses": map[string]interface{}{"q1": "Rome"}}

	if rec := s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions", body); rec.Code != http.StatusCreated {
		t.Fatalf("first submit: %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/v1/forms/"+id+"/submissions", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second submit: %d", rec.Code)
	}
	// reads are not throttled
	if rec := s.do(t, http.MethodGet, "/v1/forms/"+id+"/submissions", nil); rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
}

func TestDashboardRouteUnderV1(t *testing.T) {
	s := newTestServer(t, 10)
	if rec := s.do(t, http.MethodGet, "/v1/ws/forms/000000000000000000000000", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("dashboard for unknown form: %d", rec.Code)
	}
	id := createForm(t, s)
	// a plain GET reaches the handler, which refuses to upgrade it
	if rec := s.do(t, http.MethodGet, "/v1/ws/forms/"+id, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-upgrade request: %d", rec.Code)
	}
}
