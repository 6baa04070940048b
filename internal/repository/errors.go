package repository

import "errors"

// ErrNotFound is returned by lookups when the requested record does not
// exist. pgx.ErrNoRows never leaks out of this package.
var ErrNotFound = errors.New("record not found")
