package survey

import (
	"math/rand/v2"
	"sort"
	"testing"

	"formsight/internal/model"
)

func TestShuffleOptionsIsPermutation(t *testing.T) {
	s := NewShuffler(rand.NewPCG(1, 2))
	for n := 0; n <= 12; n++ {
		options := make([]string, n)
		for i := range options {
			options[i] = string(rune('A' + i))
		}

		shuffled, indexMap := s.ShuffleOptions(options)
		if len(shuffled) != n || len(indexMap) != n {
			t.Fatalf("n=%d: got %d options and %d indices", n, len(shuffled), len(indexMap))
		}
		for pos, idx := range indexMap {
			if options[idx] != shuffled[pos] {
				t.Fatalf("n=%d: indexMap[%d]=%d points at %q, display shows %q", n, pos, idx, options[idx], shuffled[pos])
			}
		}
		sorted := append([]int(nil), indexMap...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: indexMap %v is not a permutation", n, indexMap)
			}
		}
	}
}

func TestShuffleOptionsEmpty(t *testing.T) {
	shuffled, indexMap := ShuffleOptions(nil)
	if len(shuffled) != 0 || len(indexMap) != 0 {
		t.Fatalf("expected empty results, got %v %v", shuffled, indexMap)
	}
}

func TestShuffleOptionsDuplicateTexts(t *testing.T) {
	s := NewShuffler(rand.NewPCG(7, 7))
	options := []string{"Yes", "Yes", "No"}
	_, indexMap := s.ShuffleOptions(options)
	seen := map[int]bool{}
	for _, idx := range indexMap {
		seen[idx] = true
	}
	if len(seen) != 3 {
		t.Fatalf("duplicate texts must keep distinct indices, got %v", indexMap)
	}
}

func TestPresent(t *testing.T) {
	form := sampleForm()
	form.Pages[0].Questions[1].CorrectAnswers = []model.CorrectAnswer{model.CorrectOption(0)}

	t.Run("survey keeps order", func(t *testing.T) {
		p := NewShuffler(rand.NewPCG(3, 4)).Present(form, "p1", form.CreatedAt)
		if p.Layouts != nil {
			t.Fatalf("non-quiz presentation should carry no layouts")
		}
		got := p.Pages[0].Questions[1]
		if got.Options[0] != "Red" || got.Options[2] != "Blue" {
			t.Fatalf("options reordered: %v", got.Options)
		}
		if got.CorrectAnswers != nil {
			t.Fatalf("correct answers leaked")
		}
	})

	t.Run("quiz shuffles", func(t *testing.T) {
		quiz := *form
		quiz.IsQuiz = true
		p := NewShuffler(rand.NewPCG(3, 4)).Present(&quiz, "p2", quiz.CreatedAt)
		if len(p.Layouts) != 2 {
			t.Fatalf("expected layouts for both choice questions, got %d", len(p.Layouts))
		}
		for name, layout := range p.Layouts {
			q := QuestionMap(&quiz)[name]
			for pos, idx := range layout.IndexMap {
				if q.Options[idx] != layout.Options[pos] {
					t.Fatalf("%s: layout does not map back to canonical options", name)
				}
			}
		}
		for _, page := range p.Pages {
			for _, q := range page.Questions {
				if q.CorrectAnswers != nil {
					t.Fatalf("%s: correct answers leaked", q.Name)
				}
			}
		}
		if form.Pages[0].Questions[1].CorrectAnswers == nil {
			t.Fatalf("presenting must not modify the form")
		}
	})
}
