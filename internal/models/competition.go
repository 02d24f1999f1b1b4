package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// Competition represents a time-boxed coding competition. The three boundary
// instants satisfy StartsAt < EndsAt < VotingEndsAt; Status is a persisted
// cache of the phase derived from them.
type Competition struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Prompt       string      `json:"prompt,omitempty"`
	Status       phase.Phase `json:"status"`
	StartsAt     time.Time   `json:"starts_at"`
	EndsAt       time.Time   `json:"ends_at"`
	VotingEndsAt time.Time   `json:"voting_ends_at"`
	CreatedBy    uuid.UUID   `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// EffectiveStatus derives the competition's phase at the given instant.
func (c *Competition) EffectiveStatus(now time.Time) phase.Phase {
	return phase.Resolve(now, c.StartsAt, c.EndsAt, c.VotingEndsAt)
}

// NextTransition returns the competition's next phase boundary after now,
// or nil once completed.
func (c *Competition) NextTransition(now time.Time) *phase.Transition {
	return phase.NextTransition(now, c.StartsAt, c.EndsAt, c.VotingEndsAt)
}

// CompetitionRef is the minimal identity a reconciliation run reports for
// each competition it moved.
type CompetitionRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
