package vote

import (
	"time"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// CastVoteRequest records or updates a user's answer on a submission.
type CastVoteRequest struct {
	SubmissionID uuid.UUID `json:"-"`
	UserID       uuid.UUID `json:"-"`
	Vote         bool      `json:"vote"`
	Comment      *string   `json:"comment,omitempty"`
}

// RankedSubmission is a leaderboard row: a submission with its rank position.
type RankedSubmission struct {
	models.SubmissionWithProfile
	Rank int `json:"rank"`
}

// Leaderboard is the ranked view of a competition's submissions.
type Leaderboard struct {
	CompetitionID uuid.UUID          `json:"competition_id"`
	Entries       []RankedSubmission `json:"entries"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// TallyDrift reports a submission whose denormalized counters disagree with
// the vote rows they summarize.
type TallyDrift struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	YesVotes     int       `json:"yes_votes"`
	NoVotes      int       `json:"no_votes"`
	CountedYes   int       `json:"counted_yes"`
	CountedNo    int       `json:"counted_no"`
}
