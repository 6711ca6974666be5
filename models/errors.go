package models

import "errors"

// ErrTaskNotFound covers both a nonexistent id and a soft-deleted task; the
// API does not distinguish the two cases.
var ErrTaskNotFound = errors.New("task not found")
