package repository

import "errors"

// ErrNotFound is returned by writes that address a document that does not exist.
// Reads report a missing document as (nil, nil).
var ErrNotFound = errors.New("document not found")
