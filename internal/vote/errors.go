package vote

import "errors"

var (
	// ErrVotingClosed is returned when casting outside the voting phase.
	ErrVotingClosed = errors.New("competition not in voting phase")
	// ErrSelfVote is returned when a submitter votes on their own entry.
	ErrSelfVote = errors.New("cannot vote on your own submission")
	// ErrConflict is returned when a concurrent duplicate vote loses the
	// race on the uniqueness constraint. The existing vote is authoritative.
	ErrConflict = errors.New("vote already exists")
)
