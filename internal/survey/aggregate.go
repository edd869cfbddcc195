package survey

import (
	"math"

	"formsight/internal/model"
)

// maxDistributionOptions bounds the distinct values a question may have and still get a distribution
const maxDistributionOptions = 10

const untitledQuestion = "(Untitled question)"

// QuestionMap indexes every question of the form by name
func QuestionMap(form *model.Form) map[string]model.Question {
	m := make(map[string]model.Question)
	for _, q := range form.Questions() {
		m[q.Name] = q
	}
	return m
}

// Aggregate reduces submissions into per-question statistics. Answers keyed to questions the
// form no longer has are skipped. The result depends only on its inputs: questions follow form
// order and distinct values keep first-seen order.
func Aggregate(form *model.Form, subs []*model.Submission) *model.Summary {
	questions := form.Questions()
	summary := &model.Summary{
		FormID:        form.ID,
		ResponseCount: len(subs),
		Questions:     make(map[string]*model.QuestionStats),
		Order:         []string{},
	}

	seen := make(map[string]map[string]bool)
	for _, sub := range subs {
		for _, q := range questions {
			a, ok := sub.Responses[q.Name]
			if !ok {
				continue
			}
			st := summary.Questions[q.Name]
			if st == nil {
				title := q.Title
				if title == "" {
					title = untitledQuestion
				}
				st = &model.QuestionStats{
					Name:           q.Name,
					Title:          title,
					Type:           q.Type,
					Answers:        []model.AnswerItem{},
					NumericAnswers: []float64{},
					Options:        []string{},
				}
				summary.Questions[q.Name] = st
				seen[q.Name] = make(map[string]bool)
			}
			for _, item := range a.Items() {
				st.Answers = append(st.Answers, item)
				switch item.Kind {
				case model.ItemNumber:
					st.NumericAnswers = append(st.NumericAnswers, item.Num)
				case model.ItemString:
					if !seen[q.Name][item.Str] {
						seen[q.Name][item.Str] = true
						st.Options = append(st.Options, item.Str)
					}
				}
			}
		}
	}

	for _, q := range questions {
		st, ok := summary.Questions[q.Name]
		if !ok {
			continue
		}
		summary.Order = append(summary.Order, q.Name)
		finish(q, st)
	}
	return summary
}

func finish(q model.Question, st *model.QuestionStats) {
	st.TotalAnswers = len(st.Answers)

	if isNumeric(q.Type) && len(st.NumericAnswers) > 0 {
		sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
		for _, v := range st.NumericAnswers {
			sum += v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		avg := sum / float64(len(st.NumericAnswers))
		st.Average, st.Min, st.Max = &avg, &lo, &hi
	}

	if n := len(st.Options); n > 0 && n < maxDistributionOptions {
		counts := make(map[string]int, n)
		for _, item := range st.Answers {
			if item.Kind == model.ItemString {
				counts[item.Str]++
			}
		}
		st.OptionDistribution = make([]model.OptionCount, 0, n)
		for _, name := range st.Options {
			st.OptionDistribution = append(st.OptionDistribution, model.OptionCount{
				Name:       name,
				Count:      counts[name],
				Percentage: 100 * float64(counts[name]) / float64(st.TotalAnswers),
			})
		}
	}

	if q.Type == model.QuestionRating {
		st.RatingHistogram = make([]int, q.Buckets())
		for _, v := range st.NumericAnswers {
			if v != math.Trunc(v) || v < 0 || int(v) >= len(st.RatingHistogram) {
				continue
			}
			st.RatingHistogram[int(v)]++
		}
	}
}

// isNumeric also accepts the legacy "number" type that older forms may still carry
func isNumeric(t model.QuestionType) bool {
	return t == model.QuestionRating || t == "number"
}
