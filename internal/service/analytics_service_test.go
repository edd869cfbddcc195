package service

import (
	"context"
	"errors"
	"testing"

	"formsight/internal/cache"
	"formsight/internal/model"
	"formsight/internal/repository"
)

func TestSummaryFollowsFormEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form, _ := f.formSvc.Create(ctx, quizForm())
	if _, err := f.subSvc.Submit(ctx, form.ID, SubmitRequest{Responses: responses(map[string]interface{}{"q1": "Paris"})}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	first, err := f.analytics.Summary(ctx, form.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if first.Questions["q1"].Title != "Capital of France" || first.ResponseCount != 1 {
		t.Fatalf("unexpected summary %+v", first.Questions["q1"])
	}
	cached, _ := f.stats.Get(ctx, form.ID)
	if cached == nil {
		t.Fatalf("summary was not cached")
	}

	edit, _ := f.formSvc.Get(ctx, form.ID)
	edit.Pages[0].Questions[0].Title = "Capital city of France"
	if _, err := f.formSvc.Update(ctx, edit); err != nil {
		t.Fatalf("Update: %v", err)
	}

	second, err := f.analytics.Summary(ctx, form.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if second.Questions["q1"].Title != "Capital city of France" {
		t.Fatalf("summary computed against a stale form definition")
	}
}

func TestSummaryIgnoresBrokenCache(t *testing.T) {
	ctx := context.Background()
	forms := repository.NewMemoryFormRepo()
	subs := repository.NewMemorySubmissionRepo()
	formSvc := NewFormService(forms)
	form, _ := formSvc.Create(ctx, quizForm())
	subs.Create(ctx, &model.Submission{FormID: form.ID, Responses: map[string]model.Answer{
		"q2": model.ChoicesAnswer(model.Choice{Option: "2"}, model.Choice{Option: "5"}),
	}})

	svc := NewAnalyticsService(forms, subs, brokenStatsCache{})
	svc.SetBroadcaster(&stubBroadcaster{})
	summary, err := svc.Summary(ctx, form.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	stats := summary.Questions["q2"]
	if stats == nil || stats.TotalAnswers != 2 || len(stats.OptionDistribution) != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	// refresh tolerates the failing invalidate
	svc.Refresh(ctx, form.ID)
}

func TestSummaryUnknownForm(t *testing.T) {
	f := newFixture()
	if _, err := f.analytics.Summary(context.Background(), "missing"); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestRefreshWithoutBroadcasterOnlyInvalidates(t *testing.T) {
	ctx := context.Background()
	forms := repository.NewMemoryFormRepo()
	stats := cache.NewMemoryStatsCache(0)
	svc := NewAnalyticsService(forms, repository.NewMemorySubmissionRepo(), stats)
	form, _ := NewFormService(forms).Create(ctx, quizForm())

	if _, err := svc.Summary(ctx, form.ID); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	svc.Refresh(ctx, form.ID)
	if got, _ := stats.Get(ctx, form.ID); got != nil {
		t.Fatalf("expected cache entry to be dropped")
	}
}
