package vote

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
	"github.com/RomanSlack/Orchestrator-Arena/internal/competition"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/submission"
)

// VoteApp defines what the service layer needs from the vote application.
type VoteApp interface {
	CastVote(ctx context.Context, req CastVoteRequest) (*models.Vote, error)
	GetUserVote(ctx context.Context, submissionID, userID uuid.UUID) (*models.Vote, error)
	GetLeaderboard(ctx context.Context, competitionID uuid.UUID) (*Leaderboard, error)
}

// Service exposes vote endpoints
type Service struct {
	app VoteApp
}

// NewService creates a new vote service
func NewService(app VoteApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts vote endpoints.
func (s *Service) RegisterRoutes(public, authed gin.IRouter) {
	public.GET("/competitions/:id/leaderboard", s.Leaderboard)
	authed.POST("/submissions/:id/vote", s.Cast)
	authed.GET("/submissions/:id/vote", s.GetMine)
}

// Cast records or updates the authenticated user's vote on a submission.
func (s *Service) Cast(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	req.SubmissionID = submissionID
	req.UserID = auth.UserID(c)

	v, err := s.app.CastVote(c.Request.Context(), req)
	switch {
	case errors.Is(err, submission.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	case errors.Is(err, ErrVotingClosed), errors.Is(err, ErrSelfVote):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
	default:
		c.JSON(http.StatusOK, v)
	}
}

// GetMine returns the authenticated user's vote on a submission, if any.
func (s *Service) GetMine(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	v, err := s.app.GetUserVote(c.Request.Context(), submissionID, auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vote"})
		return
	}
	if v == nil {
		c.JSON(http.StatusOK, gin.H{"vote": nil})
		return
	}
	c.JSON(http.StatusOK, v)
}

// Leaderboard returns a competition's submissions ranked by yes votes.
func (s *Service) Leaderboard(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	board, err := s.app.GetLeaderboard(c.Request.Context(), competitionID)
	if errors.Is(err, competition.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get leaderboard"})
		return
	}
	c.JSON(http.StatusOK, board)
}
