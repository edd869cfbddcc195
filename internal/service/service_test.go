package service

import (
	"context"
	"errors"
	"sync"

	"formsight/internal/cache"
	"formsight/internal/model"
	"formsight/internal/repository"
)

type recordedEvent struct {
	formID  string
	msgType string
	payload interface{}
}

type stubBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *stubBroadcaster) BroadcastToForm(formID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{formID, msgType, payload})
}

func (b *stubBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.msgType
	}
	return out
}

// flakySubmissionRepo fails deletes of one id
type flakySubmissionRepo struct {
	repository.SubmissionRepository
	failID string
}

func (r *flakySubmissionRepo) Delete(ctx context.Context, formID, id string) error {
	if id == r.failID {
		return errors.New("connection reset")
	}
	return r.SubmissionRepository.Delete(ctx, formID, id)
}

// brokenStatsCache fails every call
type brokenStatsCache struct{}

func (brokenStatsCache) Get(ctx context.Context, formID string) (*model.Summary, error) {
	return nil, errors.New("cache down")
}
func (brokenStatsCache) Set(ctx context.Context, summary *model.Summary) error {
	return errors.New("cache down")
}
func (brokenStatsCache) Invalidate(ctx context.Context, formID string) error {
	return errors.New("cache down")
}

type fixture struct {
	forms       *repository.MemoryFormRepo
	submissions *repository.MemorySubmissionRepo
	stats       cache.StatsCache
	formSvc     *FormService
	subSvc      *SubmissionService
	analytics   *AnalyticsService
	broadcaster *stubBroadcaster
}

func newFixture() *fixture {
	f := &fixture{
		forms:       repository.NewMemoryFormRepo(),
		submissions: repository.NewMemorySubmissionRepo(),
		stats:       cache.NewMemoryStatsCache(0),
		broadcaster: &stubBroadcaster{},
	}
	f.formSvc = NewFormService(f.forms)
	f.analytics = NewAnalyticsService(f.forms, f.submissions, f.stats)
	f.subSvc = NewSubmissionService(f.forms, f.submissions, cache.NewMemoryPresentationCache(0), SubmissionOptions{Precision: 4})
	f.subSvc.SetAnalyticsService(f.analytics)
	f.subSvc.SetBroadcaster(f.broadcaster)
	return f
}

func ptr(v float64) *float64 { return &v }

func quizForm() *model.Form {
	return &model.Form{
		OwnerID: "owner",
		Title:   "Capitals",
		IsQuiz:  true,
		Pages: []model.Page{{Questions: []model.Question{
			{Type: model.QuestionMultipleChoice, Title: "Capital of France", Options: []string{"Berlin", "Paris", "Rome"},
				CorrectAnswers: []model.CorrectAnswer{model.CorrectOption(1)}, IsRequired: true},
			{Type: model.QuestionCheckbox, Title: "Primes", Options: []string{"2", "4", "5"},
				CorrectAnswers: []model.CorrectAnswer{model.CorrectOption(0), model.CorrectOption(2)}, Score: ptr(2)},
			{Type: model.QuestionShortText, Title: "Comment"},
		}}},
	}
}
