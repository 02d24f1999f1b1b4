package phase

import (
	"fmt"
	"time"
)

// Transition names the next phase a competition will enter and the instant
// it begins.
type Transition struct {
	Phase Phase     `json:"status"`
	At    time.Time `json:"at"`
}

// NextTransition returns the next phase boundary after now, or nil when the
// competition is completed. The boundary semantics match Resolve exactly:
// at the instant a boundary passes, the transition it named has already
// happened and the following one (if any) is returned.
func NextTransition(now, startsAt, endsAt, votingEndsAt time.Time) *Transition {
	if now.Before(startsAt) {
		return &Transition{Phase: Live, At: startsAt}
	}
	if now.Before(endsAt) {
		return &Transition{Phase: Voting, At: endsAt}
	}
	if now.Before(votingEndsAt) {
		return &Transition{Phase: Completed, At: votingEndsAt}
	}
	return nil
}

// FormatRemaining renders a countdown duration at decreasing granularity:
// days+hours if at least a day remains, hours+minutes if at least an hour,
// minutes+seconds if at least a minute, bare seconds otherwise. Zero or
// negative durations render as "0s".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	seconds := int((d % time.Minute) / time.Second)

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
