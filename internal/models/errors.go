package models

import "errors"

// ErrAlreadyExists is returned by store inserts that hit a uniqueness
// constraint. Import pipelines treat it as a duplicate, not a failure.
var ErrAlreadyExists = errors.New("already exists")
