package submission

import (
	"time"

	"github.com/google/uuid"
)

// UpsertSubmissionRequest creates or replaces a participant's entry. One
// submission per (competition, user); re-submitting while live edits the
// existing entry in place.
type UpsertSubmissionRequest struct {
	CompetitionID uuid.UUID  `json:"-"`
	UserID        uuid.UUID  `json:"-"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	RepoURL       string     `json:"repo_url"`
	DemoURL       *string    `json:"demo_url,omitempty"`
	RepoCreatedAt *time.Time `json:"repo_created_at,omitempty"`
}
