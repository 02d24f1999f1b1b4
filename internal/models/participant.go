package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant links a user to a competition they joined. One row per
// (competition, user) pair; rows are created and deleted only while the
// competition is upcoming.
type Participant struct {
	ID            uuid.UUID `json:"id"`
	CompetitionID uuid.UUID `json:"competition_id"`
	UserID        uuid.UUID `json:"user_id"`
	JoinedAt      time.Time `json:"joined_at"`
}
