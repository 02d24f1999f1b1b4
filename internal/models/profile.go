package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a registered user.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	GithubUsername string    `json:"github_username"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
