package service

import (
	"context"
	"time"

	"formsight/internal/cache"
	"formsight/internal/model"
	"formsight/internal/repository"
	"formsight/internal/survey"
	"formsight/pkg/logger"
	"formsight/pkg/monitoring"
	"formsight/pkg/tracing"

	"go.uber.org/zap"
)

// AnalyticsService computes and caches per-form summaries
type AnalyticsService struct {
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	statsCache  cache.StatsCache
	broadcaster Broadcaster
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(forms repository.FormRepository, submissions repository.SubmissionRepository, statsCache cache.StatsCache) *AnalyticsService {
	return &AnalyticsService{
		forms:       forms,
		submissions: submissions,
		statsCache:  statsCache,
	}
}

// SetBroadcaster enables stats_update pushes to dashboards
func (s *AnalyticsService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Summary returns the aggregation of every submission of the form. A cached summary is used
// only when it was computed against the current form definition; cache failures fall back to
// recomputation.
func (s *AnalyticsService) Summary(ctx context.Context, formID string) (*model.Summary, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.Summary")
	defer span.End()

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, persistErr("get form", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	version := form.UpdatedAt.UnixNano()

	cached, err := s.statsCache.Get(ctx, formID)
	switch {
	case err != nil:
		monitoring.StatsCacheResults.WithLabelValues("error").Inc()
		logger.Log.Warn("stats cache read failed", zap.String("formId", formID), zap.Error(err))
	case cached != nil && cached.FormVersion == version:
		monitoring.StatsCacheResults.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		monitoring.StatsCacheResults.WithLabelValues("miss").Inc()
	}

	subs, err := s.submissions.ListByFormID(ctx, formID)
	if err != nil {
		span.RecordError(err)
		return nil, persistErr("list submissions", err)
	}

	start := time.Now()
	summary := survey.Aggregate(form, subs)
	monitoring.AggregationDuration.Observe(time.Since(start).Seconds())
	summary.FormID = formID
	summary.FormVersion = version

	if err := s.statsCache.Set(ctx, summary); err != nil {
		logger.Log.Warn("stats cache write failed", zap.String("formId", formID), zap.Error(err))
	}
	return summary, nil
}

// Refresh drops the cached summary after a write and, when dashboards are attached,
// pushes the recomputed summary to them
func (s *AnalyticsService) Refresh(ctx context.Context, formID string) {
	if err := s.statsCache.Invalidate(ctx, formID); err != nil {
		logger.Log.Warn("stats cache invalidate failed", zap.String("formId", formID), zap.Error(err))
	}
	if s.broadcaster == nil {
		return
	}
	summary, err := s.Summary(ctx, formID)
	if err != nil {
		logger.Log.Error("stats refresh failed", zap.String("formId", formID), zap.Error(err))
		return
	}
	s.broadcaster.BroadcastToForm(formID, EventStatsUpdate, summary)
}
