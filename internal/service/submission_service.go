package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"formsight/internal/cache"
	"formsight/internal/model"
	"formsight/internal/repository"
	"formsight/internal/survey"
	"formsight/pkg/logger"
	"formsight/pkg/monitoring"
	"formsight/pkg/tracing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SubmitRequest is a respondent's raw submission
type SubmitRequest struct {
	PresentationID string                     `json:"presentationId,omitempty"`
	Responses      map[string]json.RawMessage `json:"responses"`
	OtherText      map[string]string          `json:"otherText,omitempty"`
}

// DeleteResult reports the outcome for one id of a batch delete
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// SubmissionOptions tunes scoring and batch deletes
type SubmissionOptions struct {
	// Precision is the number of decimals a stored quiz score keeps
	Precision         int
	DeleteConcurrency int
}

// SubmissionService accepts, lists and deletes submissions
type SubmissionService struct {
	forms         repository.FormRepository
	submissions   repository.SubmissionRepository
	presentations cache.PresentationCache
	shuffler      *survey.Shuffler
	analytics     *AnalyticsService
	broadcaster   Broadcaster
	opts          SubmissionOptions
	now           func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	forms repository.FormRepository,
	submissions repository.SubmissionRepository,
	presentations cache.PresentationCache,
	opts SubmissionOptions,
) *SubmissionService {
	if opts.DeleteConcurrency <= 0 {
		opts.DeleteConcurrency = 8
	}
	return &SubmissionService{
		forms:         forms,
		submissions:   submissions,
		presentations: presentations,
		opts:          opts,
		now:           time.Now,
	}
}

// SetShuffler replaces the random source used for presentations
func (s *SubmissionService) SetShuffler(sh *survey.Shuffler) {
	s.shuffler = sh
}

// SetAnalyticsService lets writes refresh the summary cache
func (s *SubmissionService) SetAnalyticsService(a *AnalyticsService) {
	s.analytics = a
}

// SetBroadcaster enables dashboard pushes
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *SubmissionService) loadForm(ctx context.Context, formID string) (*model.Form, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, persistErr("get form", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// Present issues a rendering of the form. Quiz renderings are kept so the submission
// can be scored against the option order the respondent saw.
func (s *SubmissionService) Present(ctx context.Context, formID string) (*model.Presentation, error) {
	ctx, span := tracing.Tracer.Start(ctx, "SubmissionService.Present")
	defer span.End()

	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	p := s.shuffler.Present(form, uuid.NewString(), s.now())
	if form.IsQuiz {
		if err := s.presentations.Set(ctx, p); err != nil {
			span.RecordError(err)
			return nil, persistErr("store presentation", err)
		}
	}
	return p, nil
}

// Submit normalizes, validates, scores and stores a submission
func (s *SubmissionService) Submit(ctx context.Context, formID string, req SubmitRequest) (*model.Submission, error) {
	ctx, span := tracing.Tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses := make(map[string]survey.Response, len(req.Responses))
	for name, value := range req.Responses {
		responses[name] = survey.Response{Value: value, OtherText: req.OtherText[name]}
	}
	answers, err := survey.NormalizeAll(form, responses)
	if err != nil {
		monitoring.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	sub := &model.Submission{
		FormID:    formID,
		FormTitle: form.Title,
		Responses: answers,
		CreatedAt: s.now(),
	}

	if form.IsQuiz {
		layouts, err := s.layouts(ctx, formID, req.PresentationID)
		if err != nil {
			return nil, err
		}
		result := survey.Score(form, answers, layouts)
		total := survey.RoundScore(result.Fraction, s.opts.Precision)
		sub.TotalScore = &total
	}

	if _, err := s.submissions.Create(ctx, sub); err != nil {
		span.RecordError(err)
		monitoring.SubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, persistErr("create submission", err)
	}
	monitoring.SubmissionsTotal.WithLabelValues("accepted").Inc()

	logger.Log.Info("submission stored", zap.String("formId", formID), zap.String("submissionId", sub.ID))
	s.changed(ctx, formID, EventSubmissionCreated, sub)
	return sub, nil
}

// layouts claims the presentation the respondent answered. A claimed presentation is gone
// even if the submission later fails to store.
func (s *SubmissionService) layouts(ctx context.Context, formID, presentationID string) (map[string]model.OptionLayout, error) {
	if presentationID == "" {
		return nil, nil
	}
	p, err := s.presentations.Take(ctx, presentationID)
	if err != nil {
		return nil, persistErr("load presentation", err)
	}
	if p == nil || p.FormID != formID {
		return nil, ErrPresentationNotFound
	}
	return p.Layouts, nil
}

// List returns the form's submissions, newest first
func (s *SubmissionService) List(ctx context.Context, formID string) ([]*model.Submission, error) {
	if _, err := s.loadForm(ctx, formID); err != nil {
		return nil, err
	}
	subs, err := s.submissions.ListByFormID(ctx, formID)
	if err != nil {
		return nil, persistErr("list submissions", err)
	}
	return subs, nil
}

// Delete removes one submission
func (s *SubmissionService) Delete(ctx context.Context, formID, id string) error {
	err := s.submissions.Delete(ctx, formID, id)
	if errors.Is(err, repository.ErrNotFound) {
		monitoring.DeletionsTotal.WithLabelValues("not_found").Inc()
		return ErrSubmissionNotFound
	}
	if err != nil {
		monitoring.DeletionsTotal.WithLabelValues("failed").Inc()
		return persistErr("delete submission", err)
	}
	monitoring.DeletionsTotal.WithLabelValues("deleted").Inc()
	s.changed(ctx, formID, EventSubmissionsDeleted, []string{id})
	return nil
}

// DeleteMany deletes each id independently and reports every outcome. Deletes that
// succeeded stay deleted when others fail.
func (s *SubmissionService) DeleteMany(ctx context.Context, formID string, ids []string) []DeleteResult {
	ctx, span := tracing.Tracer.Start(ctx, "SubmissionService.DeleteMany")
	defer span.End()

	results := make([]DeleteResult, len(ids))
	var g errgroup.Group
	g.SetLimit(s.opts.DeleteConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = DeleteResult{ID: id}
			err := s.submissions.Delete(ctx, formID, id)
			switch {
			case err == nil:
				results[i].Deleted = true
				monitoring.DeletionsTotal.WithLabelValues("deleted").Inc()
			case errors.Is(err, repository.ErrNotFound):
				results[i].Error = ErrSubmissionNotFound.Error()
				monitoring.DeletionsTotal.WithLabelValues("not_found").Inc()
			default:
				results[i].Error = err.Error()
				monitoring.DeletionsTotal.WithLabelValues("failed").Inc()
				logger.Log.Error("batch delete failed", zap.String("formId", formID), zap.String("submissionId", id), zap.Error(err))
			}
			return nil
		})
	}
	g.Wait()

	deleted := make([]string, 0, len(ids))
	for _, r := range results {
		if r.Deleted {
			deleted = append(deleted, r.ID)
		}
	}
	if len(deleted) > 0 {
		s.changed(ctx, formID, EventSubmissionsDeleted, deleted)
	}
	return results
}

func (s *SubmissionService) changed(ctx context.Context, formID, event string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(formID, event, payload)
	}
	if s.analytics != nil {
		s.analytics.Refresh(ctx, formID)
	}
}
