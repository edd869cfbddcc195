package survey

import (
	"bytes"
	"encoding/json"
	"fmt"

	"formsight/internal/model"

	"go.uber.org/multierr"
)

const (
	// OtherSentinel is the selection value respondent UIs send for the free-text slot.
	// It only means "other" when the question allows it and has no real option with that text.
	OtherSentinel = "other"
	// OtherToken always selects the free-text slot, whatever the option texts are.
	OtherToken = "__other__"
)

// Response is a raw answer as received from a respondent
type Response struct {
	Value     json.RawMessage
	OtherText string
}

func selectsOther(q model.Question, v string) bool {
	if !q.AllowOtherAnswer {
		return false
	}
	if v == OtherToken {
		return true
	}
	return v == OtherSentinel && q.OptionIndex(OtherSentinel) < 0
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Normalize converts one raw value into the canonical answer for q
func Normalize(q model.Question, r Response) (model.Answer, error) {
	if isNull(r.Value) {
		return model.NoAnswer(), nil
	}

	switch q.Type {
	case model.QuestionShortText, model.QuestionDate:
		var s string
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return model.Answer{}, fieldErr(q.Name, "expected a text value")
		}
		if q.Type == model.QuestionDate {
			return model.DateAnswer(s), nil
		}
		return model.TextAnswer(s), nil

	case model.QuestionRating:
		var v float64
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return model.Answer{}, fieldErr(q.Name, "expected a numeric rating")
		}
		return model.RatingAnswer(v), nil

	case model.QuestionMultipleChoice:
		var s string
		if err := json.Unmarshal(r.Value, &s); err != nil {
			return model.Answer{}, fieldErr(q.Name, "expected a single option")
		}
		if selectsOther(q, s) {
			if r.OtherText == "" {
				return model.NoAnswer(), nil
			}
			return model.OtherAnswer(r.OtherText), nil
		}
		return model.OptionAnswer(s), nil

	case model.QuestionCheckbox:
		var list []string
		if err := json.Unmarshal(r.Value, &list); err != nil {
			return model.Answer{}, fieldErr(q.Name, "expected a list of options")
		}
		choices := make([]model.Choice, 0, len(list))
		other := false
		for _, s := range list {
			if selectsOther(q, s) {
				other = true
				continue
			}
			choices = append(choices, model.Choice{Option: s})
		}
		if other && r.OtherText != "" {
			choices = append(choices, model.Choice{Option: r.OtherText, Other: true})
		}
		return model.ChoicesAnswer(choices...), nil
	}
	return model.Answer{}, fieldErr(q.Name, fmt.Sprintf("unsupported question type %q", q.Type))
}

// NormalizeAll normalizes every answer of a submission in form order and checks required
// questions. Keys that name no question are dropped; missing keys are not stored. Every
// violation is reported in one ValidationError.
func NormalizeAll(form *model.Form, responses map[string]Response) (map[string]model.Answer, error) {
	out := make(map[string]model.Answer, len(responses))
	var err error
	for _, q := range form.Questions() {
		r, ok := responses[q.Name]
		if !ok {
			if q.IsRequired {
				err = multierr.Append(err, fieldErr(q.Name, requiredMessage(q)))
			}
			continue
		}
		a, nerr := Normalize(q, r)
		if nerr != nil {
			err = multierr.Append(err, nerr)
			continue
		}
		if q.IsRequired && a.IsEmpty() {
			err = multierr.Append(err, fieldErr(q.Name, requiredMessage(q)))
			continue
		}
		out[q.Name] = a
	}
	if err != nil {
		return nil, collect(err)
	}
	return out, nil
}

func requiredMessage(q model.Question) string {
	title := q.Title
	if title == "" {
		title = q.Name
	}
	return fmt.Sprintf("%q is required", title)
}
