package survey

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

// FieldError is one violation, tied to a question name or form path
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError lists every violation found, not just the first
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i := range e.Fields {
		msgs[i] = e.Fields[i].Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func fieldErr(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// collect folds a multierr chain into a ValidationError, nil when there is nothing to report
func collect(err error) error {
	if err == nil {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			ve.Fields = append(ve.Fields, *fe)
			continue
		}
		ve.Fields = append(ve.Fields, FieldError{Message: e.Error()})
	}
	return ve
}
