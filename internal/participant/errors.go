package participant

import "errors"

var (
	// ErrAlreadyJoined is returned when the user already has a join record.
	ErrAlreadyJoined = errors.New("already joined this competition")
	// ErrNotJoined is returned when leaving without a join record.
	ErrNotJoined = errors.New("not a participant of this competition")
	// ErrNotUpcoming is returned when joining or leaving outside the
	// upcoming phase.
	ErrNotUpcoming = errors.New("competition not in upcoming phase")
)
