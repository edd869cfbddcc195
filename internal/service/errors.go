package service

import "errors"

var (
	ErrFormNotFound         = errors.New("form not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrPresentationNotFound = errors.New("presentation expired or unknown")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrArchiveNotFound      = errors.New("archive not found")
)

// PersistenceError wraps a failed call to a repository, cache or archive store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
