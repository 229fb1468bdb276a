package repository

import "errors"

// ErrNotFound reports that the requested entity does not exist. Report
// composers surface it as-is; they never fall back to partial data.
var ErrNotFound = errors.New("not found")
