package github

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RomanSlack/Orchestrator-Arena/clients/github_client"
)

// Validator defines what the service layer needs from the GitHub client.
type Validator interface {
	ValidateRepositoryURL(ctx context.Context, repoURL string) *github_client.ValidationResult
}

// Service exposes the advisory repository validation endpoint. Submitters
// call it before submitting; a failed check is a warning, not a gate.
type Service struct {
	validator Validator
}

// NewService creates a new github service
func NewService(validator Validator) *Service {
	return &Service{validator: validator}
}

// RegisterRoutes mounts github endpoints.
func (s *Service) RegisterRoutes(authed gin.IRouter) {
	authed.POST("/github/validate", s.Validate)
}

// Validate checks that a repository URL points at a reachable public
// repository.
func (s *Service) Validate(c *gin.Context) {
	var req struct {
		RepoURL string `json:"repo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RepoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repo_url is required"})
		return
	}

	result := s.validator.ValidateRepositoryURL(c.Request.Context(), req.RepoURL)
	c.JSON(http.StatusOK, result)
}
