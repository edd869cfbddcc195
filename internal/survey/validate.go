package survey

import (
	"fmt"

	"formsight/internal/model"

	"go.uber.org/multierr"
)

// ValidateForm checks the schema rules of a form definition
func ValidateForm(form *model.Form) error {
	var err error
	if len(form.Pages) == 0 {
		err = multierr.Append(err, fieldErr("pages", "a form needs at least one page"))
	}

	pages := make(map[string]bool, len(form.Pages))
	names := make(map[string]bool)
	for pi, p := range form.Pages {
		if p.Name == "" {
			err = multierr.Append(err, fieldErr(fmt.Sprintf("pages[%d]", pi), "page name is empty"))
		} else if pages[p.Name] {
			err = multierr.Append(err, fieldErr(fmt.Sprintf("pages[%d]", pi), "duplicate page name "+p.Name))
		}
		pages[p.Name] = true

		for qi, q := range p.Questions {
			path := fmt.Sprintf("pages[%d].questions[%d]", pi, qi)
			if q.Name == "" {
				err = multierr.Append(err, fieldErr(path, "question name is empty"))
			} else {
				if names[q.Name] {
					err = multierr.Append(err, fieldErr(q.Name, "duplicate question name"))
				}
				names[q.Name] = true
				path = q.Name
			}
			err = multierr.Append(err, validateQuestion(path, q))
		}
	}
	return collect(err)
}

func validateQuestion(path string, q model.Question) error {
	var err error
	if !q.Type.Valid() {
		return fieldErr(path, fmt.Sprintf("unknown question type %q", q.Type))
	}
	if q.Type.IsChoice() && len(q.Options) == 0 {
		err = multierr.Append(err, fieldErr(path, "choice questions need at least one option"))
	}
	if q.RatingScale < 0 {
		err = multierr.Append(err, fieldErr(path, "rating scale must not be negative"))
	}
	if q.Score != nil && *q.Score < 0 {
		err = multierr.Append(err, fieldErr(path, "score must not be negative"))
	}
	if len(q.CorrectAnswers) > 0 && !q.Type.IsChoice() {
		err = multierr.Append(err, fieldErr(path, "only choice questions take correct answers"))
	}
	for _, c := range q.CorrectAnswers {
		switch {
		case c.Other && !q.AllowOtherAnswer:
			err = multierr.Append(err, fieldErr(path, "other is marked correct but other answers are not allowed"))
		case !c.Other && (c.Index < 0 || c.Index >= len(q.Options)):
			err = multierr.Append(err, fieldErr(path, fmt.Sprintf("correct answer index %d out of range", c.Index)))
		}
	}
	return err
}
