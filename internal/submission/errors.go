package submission

import "errors"

var (
	// ErrNotLive is returned when submitting outside the live phase.
	ErrNotLive = errors.New("competition not in live phase")
	// ErrNotParticipant is returned when a non-participant submits.
	ErrNotParticipant = errors.New("must join the competition before it starts to submit")
	// ErrNotFound is returned when no submission exists for the given key.
	ErrNotFound = errors.New("submission not found")
)
