package competition

import (
	"time"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// CreateCompetitionRequest carries the fields an organizer supplies when
// creating a competition.
type CreateCompetitionRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Prompt       string    `json:"prompt"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	VotingEndsAt time.Time `json:"voting_ends_at"`
	CreatedBy    uuid.UUID `json:"-"`
}

// Summary is a competition row as rendered in listings: derived status and
// participant count, prompt never included.
type Summary struct {
	models.Competition
	ParticipantCount int `json:"participant_count"`
}

// Detail is a single competition as rendered on its page. Prompt is blanked
// while the competition is upcoming.
type Detail struct {
	models.Competition
	ParticipantCount int               `json:"participant_count"`
	PromptVisible    bool              `json:"prompt_visible"`
	NextTransition   *phase.Transition `json:"next_transition,omitempty"`
	Countdown        string            `json:"countdown,omitempty"`
}

// PhaseInfo is the payload of the phase query endpoint, consumed by polling
// clients driving countdowns and phase-change detection.
type PhaseInfo struct {
	Status         phase.Phase       `json:"status"`
	Label          string            `json:"label"`
	NextTransition *phase.Transition `json:"next_transition,omitempty"`
	Countdown      string            `json:"countdown,omitempty"`
	Now            time.Time         `json:"now"`
}
