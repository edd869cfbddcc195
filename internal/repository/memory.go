package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"formsight/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryFormRepo keeps forms in process. Used by tests and the memory storage driver.
type MemoryFormRepo struct {
	mu    sync.RWMutex
	forms map[string]*model.Form
}

func NewMemoryFormRepo() *MemoryFormRepo {
	return &MemoryFormRepo{forms: make(map[string]*model.Form)}
}

func copyForm(f *model.Form) *model.Form {
	c := *f
	c.Pages = make([]model.Page, len(f.Pages))
	for i, p := range f.Pages {
		p.Questions = append([]model.Question(nil), p.Questions...)
		c.Pages[i] = p
	}
	return &c
}

func (r *MemoryFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	now := time.Now()
	form.ID = primitive.NewObjectID().Hex()
	form.CreatedAt = now
	form.UpdatedAt = now

	r.mu.Lock()
	r.forms[form.ID] = copyForm(form)
	r.mu.Unlock()
	return form.ID, nil
}

func (r *MemoryFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	return copyForm(f), nil
}

func (r *MemoryFormRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Form{}
	for _, f := range r.forms {
		if f.OwnerID == ownerID {
			out = append(out, copyForm(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryFormRepo) Update(ctx context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.forms[form.ID]; !ok {
		return ErrNotFound
	}
	form.UpdatedAt = time.Now()
	r.forms[form.ID] = copyForm(form)
	return nil
}

func (r *MemoryFormRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.forms[id]; !ok {
		return ErrNotFound
	}
	delete(r.forms, id)
	return nil
}

// MemorySubmissionRepo keeps submissions in process
type MemorySubmissionRepo struct {
	mu   sync.RWMutex
	subs map[string]*model.Submission
	seq  map[string]int
	next int
}

func NewMemorySubmissionRepo() *MemorySubmissionRepo {
	return &MemorySubmissionRepo{
		subs: make(map[string]*model.Submission),
		seq:  make(map[string]int),
	}
}

func (r *MemorySubmissionRepo) Create(ctx context.Context, sub *model.Submission) (string, error) {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.ID = primitive.NewObjectID().Hex()

	r.mu.Lock()
	r.subs[sub.ID] = sub.Clone()
	r.next++
	r.seq[sub.ID] = r.next
	r.mu.Unlock()
	return sub.ID, nil
}

func (r *MemorySubmissionRepo) GetByID(ctx context.Context, formID, id string) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	if !ok || s.FormID != formID {
		return nil, nil
	}
	return s.Clone(), nil
}

// ListByFormID returns newest first; ties keep the later insert first
func (r *MemorySubmissionRepo) ListByFormID(ctx context.Context, formID string) ([]*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Submission{}
	for _, s := range r.subs {
		if s.FormID == formID {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return r.seq[out[i].ID] > r.seq[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemorySubmissionRepo) Delete(ctx context.Context, formID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || s.FormID != formID {
		return ErrNotFound
	}
	delete(r.subs, id)
	delete(r.seq, id)
	return nil
}
