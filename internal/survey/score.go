package survey

import (
	"math"

	"formsight/internal/model"
)

// QuestionScore is the outcome for one scorable question
type QuestionScore struct {
	Name    string  `json:"name"`
	Correct bool    `json:"correct"`
	Points  float64 `json:"points"`
}

// ScoreResult is the full-precision quiz outcome; rounding is left to the caller
type ScoreResult struct {
	UserScore     float64         `json:"userScore"`
	TotalPossible float64         `json:"totalPossible"`
	Fraction      float64         `json:"fraction"`
	Questions     []QuestionScore `json:"questions"`
}

// Score grades answers against the form's correct answers. layouts maps question name to the
// option layout the respondent saw; questions without a layout resolve options by identity.
// Non-quiz forms yield a zero result.
func Score(form *model.Form, answers map[string]model.Answer, layouts map[string]model.OptionLayout) ScoreResult {
	var res ScoreResult
	if !form.IsQuiz {
		return res
	}
	for _, q := range form.Questions() {
		if len(q.CorrectAnswers) == 0 {
			continue
		}
		points := q.Points()
		res.TotalPossible += points

		layout, hasLayout := layouts[q.Name]
		var lp *model.OptionLayout
		if hasLayout {
			lp = &layout
		}
		correct := false
		if a, ok := answers[q.Name]; ok {
			correct = isCorrect(q, a, lp)
		}
		if correct {
			res.UserScore += points
		}
		res.Questions = append(res.Questions, QuestionScore{Name: q.Name, Correct: correct, Points: points})
	}
	if res.TotalPossible > 0 {
		res.Fraction = res.UserScore / res.TotalPossible
	}
	return res
}

func isCorrect(q model.Question, a model.Answer, layout *model.OptionLayout) bool {
	switch q.Type {
	case model.QuestionMultipleChoice:
		c, ok := a.Choice()
		if !ok {
			return false
		}
		key, ok := canonical(q, c, layout)
		return ok && key == q.CorrectAnswers[0]

	case model.QuestionCheckbox:
		if a.Kind != model.AnswerChoices {
			return false
		}
		selected := make(map[model.CorrectAnswer]bool, len(a.Choices))
		for _, c := range a.Choices {
			key, ok := canonical(q, c, layout)
			if !ok {
				return false
			}
			selected[key] = true
		}
		expected := make(map[model.CorrectAnswer]bool, len(q.CorrectAnswers))
		for _, k := range q.CorrectAnswers {
			expected[k] = true
		}
		if len(selected) != len(expected) {
			return false
		}
		for k := range expected {
			if !selected[k] {
				return false
			}
		}
		return true
	}
	return false
}

// canonical resolves a selection to the key correct answers are stated in
func canonical(q model.Question, c model.Choice, layout *model.OptionLayout) (model.CorrectAnswer, bool) {
	if c.Other {
		return model.CorrectOther(), true
	}
	if layout == nil || len(layout.Options) == 0 {
		idx := q.OptionIndex(c.Option)
		return model.CorrectOption(idx), idx >= 0
	}
	for pos, o := range layout.Options {
		if o != c.Option {
			continue
		}
		if pos >= len(layout.IndexMap) {
			return model.CorrectAnswer{}, false
		}
		return model.CorrectOption(layout.IndexMap[pos]), true
	}
	return model.CorrectAnswer{}, false
}

// RoundScore rounds v to the given number of decimals
func RoundScore(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
