package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a participant's entry in a competition. One row per
// (competition, user) pair. YesVotes and NoVotes are denormalized counters
// maintained in the same transaction as the vote rows they summarize; they
// must always equal the count of matching vote rows.
type Submission struct {
	ID            uuid.UUID  `json:"id"`
	CompetitionID uuid.UUID  `json:"competition_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	RepoURL       string     `json:"repo_url"`
	DemoURL       *string    `json:"demo_url,omitempty"`
	RepoCreatedAt *time.Time `json:"repo_created_at,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	YesVotes      int        `json:"yes_votes"`
	NoVotes       int        `json:"no_votes"`
}

// SubmissionWithProfile joins a submission with its submitter's profile for
// leaderboard and listing views.
type SubmissionWithProfile struct {
	Submission
	Profile Profile `json:"profile"`
}
