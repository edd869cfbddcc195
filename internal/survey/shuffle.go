package survey

import (
	"math/rand/v2"
	"sync"
	"time"

	"formsight/internal/model"
)

// Shuffler draws Fisher-Yates permutations. A nil or zero Shuffler uses the global generator.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler draws from src; tests pass a seeded source for reproducible layouts
func NewShuffler(src rand.Source) *Shuffler {
	return &Shuffler{rng: rand.New(src)}
}

func (s *Shuffler) intN(n int) int {
	if s == nil || s.rng == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// permutation returns perm where perm[displayPos] = canonicalIndex
func (s *Shuffler) permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.intN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// ShuffleOptions returns the options in a random order and the map from display position
// to canonical index. Duplicated option texts keep distinct indices.
func (s *Shuffler) ShuffleOptions(options []string) ([]string, []int) {
	perm := s.permutation(len(options))
	shuffled := make([]string, len(options))
	for pos, idx := range perm {
		shuffled[pos] = options[idx]
	}
	return shuffled, perm
}

// ShuffleQuestions returns a reordered copy of qs
func (s *Shuffler) ShuffleQuestions(qs []model.Question) []model.Question {
	perm := s.permutation(len(qs))
	out := make([]model.Question, len(qs))
	for pos, idx := range perm {
		out[pos] = qs[idx]
	}
	return out
}

// ShuffleOptions uses the global generator
func ShuffleOptions(options []string) ([]string, []int) {
	return (*Shuffler)(nil).ShuffleOptions(options)
}

// Present builds one rendering of form. Quizzes get questions shuffled within each page and
// every choice question's options shuffled; other forms keep authoring order and carry no layouts.
// Correct answers never leave the server.
func (s *Shuffler) Present(form *model.Form, id string, now time.Time) *model.Presentation {
	p := &model.Presentation{
		ID:        id,
		FormID:    form.ID,
		Title:     form.Title,
		IsQuiz:    form.IsQuiz,
		Pages:     make([]model.PresentedPage, 0, len(form.Pages)),
		CreatedAt: now,
	}
	if form.IsQuiz {
		p.Layouts = make(map[string]model.OptionLayout)
	}

	for _, page := range form.Pages {
		qs := page.Questions
		if form.IsQuiz {
			qs = s.ShuffleQuestions(qs)
		}
		pp := model.PresentedPage{
			Name:        page.Name,
			Title:       page.Title,
			Description: page.Description,
			Questions:   make([]model.Question, 0, len(qs)),
		}
		for _, q := range qs {
			q.CorrectAnswers = nil
			if form.IsQuiz && q.Type.IsChoice() {
				shuffled, indexMap := s.ShuffleOptions(q.Options)
				q.Options = shuffled
				p.Layouts[q.Name] = model.OptionLayout{Options: shuffled, IndexMap: indexMap}
			} else {
				q.Options = append([]string(nil), q.Options...)
			}
			pp.Questions = append(pp.Questions, q)
		}
		p.Pages = append(p.Pages, pp)
	}
	return p
}
