package profile

import "errors"

// ErrNotFound is returned when no profile matches the lookup.
var ErrNotFound = errors.New("profile not found")
