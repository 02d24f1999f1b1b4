package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single "would you use this?" answer. One row per
// (submission, user) pair; changing an answer updates the row in place and
// flips the submission's counters in the same transaction.
type Vote struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	UserID       uuid.UUID `json:"user_id"`
	Vote         bool      `json:"vote"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
