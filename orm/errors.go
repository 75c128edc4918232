package orm

import "errors"

// ErrNotFound is returned when a query expects exactly one row but finds
// none. Callers treat it as an absent record, not a storage failure.
var ErrNotFound = errors.New("orm: not found")
