package phase

import "time"

// Phase is the derived lifecycle state of a competition. The status column
// on a competition row is only a cache of this value; Resolve is the source
// of truth.
type Phase string

const (
	Upcoming  Phase = "upcoming"
	Live      Phase = "live"
	Voting    Phase = "voting"
	Completed Phase = "completed"
)

// Ordinal returns the position of the phase in the lifecycle. Transitions
// only ever move to a higher ordinal.
func (p Phase) Ordinal() int {
	switch p {
	case Upcoming:
		return 0
	case Live:
		return 1
	case Voting:
		return 2
	case Completed:
		return 3
	default:
		return -1
	}
}

// Valid reports whether p is one of the four lifecycle phases.
func (p Phase) Valid() bool {
	return p.Ordinal() >= 0
}

// Label returns the human-readable form of the phase.
func (p Phase) Label() string {
	switch p {
	case Upcoming:
		return "Upcoming"
	case Live:
		return "Live"
	case Voting:
		return "Voting"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Resolve maps a competition's three boundary instants and a single "now"
// sample to its phase. Boundaries belong to the later phase: at exactly
// startsAt the competition is live, not upcoming. Callers must sample the
// clock once per logical operation and pass the same now to every Resolve
// and NextTransition call within it.
func Resolve(now, startsAt, endsAt, votingEndsAt time.Time) Phase {
	if now.Before(startsAt) {
		return Upcoming
	}
	if now.Before(endsAt) {
		return Live
	}
	if now.Before(votingEndsAt) {
		return Voting
	}
	return Completed
}

// CanJoin reports whether users may join during the given phase.
func CanJoin(p Phase) bool { return p == Upcoming }

// CanSubmit reports whether participants may create or edit submissions.
func CanSubmit(p Phase) bool { return p == Live }

// CanVote reports whether users may cast votes.
func CanVote(p Phase) bool { return p == Voting }

// PromptVisible reports whether the competition prompt may be shown.
// The prompt is hidden before start and visible from the live phase on.
func PromptVisible(p Phase) bool { return p != Upcoming }
