package profile

// UpsertProfileRequest creates a profile or refreshes its GitHub metadata.
type UpsertProfileRequest struct {
	Username       string  `json:"username"`
	GithubUsername string  `json:"github_username"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
}
