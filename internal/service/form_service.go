package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"formsight/internal/model"
	"formsight/internal/repository"
	"formsight/internal/survey"
	"formsight/pkg/tracing"

	"github.com/google/uuid"
)

// FormService handles form CRUD operations
type FormService struct {
	forms repository.FormRepository
}

// NewFormService creates a new form service
func NewFormService(forms repository.FormRepository) *FormService {
	return &FormService{
		forms: forms,
	}
}

// Create validates and stores a new form
func (s *FormService) Create(ctx context.Context, form *model.Form) (*model.Form, error) {
	ctx, span := tracing.Tracer.Start(ctx, "FormService.Create")
	defer span.End()

	AssignIdentity(form)
	if err := survey.ValidateForm(form); err != nil {
		return nil, err
	}
	if _, err := s.forms.Create(ctx, form); err != nil {
		span.RecordError(err)
		return nil, persistErr("create form", err)
	}
	return form, nil
}

// Get retrieves a form by ID
func (s *FormService) Get(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get form", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// ListByOwner retrieves all forms of an owner, newest first
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error) {
	forms, err := s.forms.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, persistErr("list forms", err)
	}
	return forms, nil
}

// Update replaces the definition of an existing form. Owner and creation time are kept.
func (s *FormService) Update(ctx context.Context, form *model.Form) (*model.Form, error) {
	ctx, span := tracing.Tracer.Start(ctx, "FormService.Update")
	defer span.End()

	existing, err := s.Get(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID == "" {
		form.OwnerID = existing.OwnerID
	}
	form.CreatedAt = existing.CreatedAt
	// keys of deleted questions stay retired
	form.QuestionSeq = max(form.QuestionSeq, existing.QuestionSeq, highestKey(existing))

	AssignIdentity(form)
	if err := survey.ValidateForm(form); err != nil {
		return nil, err
	}
	if err := s.forms.Update(ctx, form); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		span.RecordError(err)
		return nil, persistErr("update form", err)
	}
	return form, nil
}

// Delete removes a form. Its submissions stay in the store.
func (s *FormService) Delete(ctx context.Context, id string) error {
	err := s.forms.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFormNotFound
	}
	return persistErr("delete form", err)
}

// AssignIdentity gives every question a stable ID and answer key, and every page a name.
// New answer keys continue after form.QuestionSeq and the highest q<N> in the form, so a key
// is never handed out twice.
func AssignIdentity(form *model.Form) {
	next := max(form.QuestionSeq, highestKey(form)) + 1

	for pi := range form.Pages {
		page := &form.Pages[pi]
		if page.Name == "" {
			page.Name = fmt.Sprintf("page%d", pi+1)
		}
		for qi := range page.Questions {
			q := &page.Questions[qi]
			if q.ID == "" {
				q.ID = uuid.NewString()
			}
			if q.Name == "" {
				q.Name = fmt.Sprintf("q%d", next)
				next++
			}
		}
	}
	form.QuestionSeq = next - 1
}

func highestKey(form *model.Form) int {
	highest := 0
	for _, q := range form.Questions() {
		if n, ok := keyNumber(q.Name); ok && n > highest {
			highest = n
		}
	}
	return highest
}

func keyNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "q") {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
