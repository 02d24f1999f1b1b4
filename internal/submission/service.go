package submission

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
	"github.com/RomanSlack/Orchestrator-Arena/internal/competition"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// SubmissionApp defines what the service layer needs from the submission
// application.
type SubmissionApp interface {
	UpsertSubmission(ctx context.Context, req UpsertSubmissionRequest) (*models.Submission, error)
	GetUserSubmission(ctx context.Context, competitionID, userID uuid.UUID) (*models.Submission, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SubmissionWithProfile, error)
}

// Service exposes submission endpoints
type Service struct {
	app SubmissionApp
}

// NewService creates a new submission service
func NewService(app SubmissionApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts submission endpoints.
func (s *Service) RegisterRoutes(public, authed gin.IRouter) {
	public.GET("/competitions/:id/submissions", s.List)
	authed.PUT("/competitions/:id/submission", s.Upsert)
	authed.GET("/competitions/:id/submission", s.GetMine)
}

// Upsert creates or edits the authenticated user's entry.
func (s *Service) Upsert(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	var req UpsertSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	req.CompetitionID = competitionID
	req.UserID = auth.UserID(c)

	sub, err := s.app.UpsertSubmission(c.Request.Context(), req)
	switch {
	case errors.Is(err, competition.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
	case errors.Is(err, ErrNotLive), errors.Is(err, ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, sub)
	}
}

// GetMine returns the authenticated user's entry in a competition.
func (s *Service) GetMine(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	sub, err := s.app.GetUserSubmission(c.Request.Context(), competitionID, auth.UserID(c))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get submission"})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// List returns a competition's submissions with submitter profiles.
func (s *Service) List(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	subs, err := s.app.ListByCompetition(c.Request.Context(), competitionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}
