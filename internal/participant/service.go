package participant

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

// ParticipantApp defines what the service layer needs from the participant
// application.
type ParticipantApp interface {
	Join(ctx context.Context, competitionID, userID uuid.UUID) (*models.Participant, error)
	Leave(ctx context.Context, competitionID, userID uuid.UUID) error
	IsParticipant(ctx context.Context, competitionID, userID uuid.UUID) (bool, error)
}

// Service exposes join/leave endpoints
type Service struct {
	app ParticipantApp
}

// NewService creates a new participant service
func NewService(app ParticipantApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts join/leave endpoints on an authenticated router.
func (s *Service) RegisterRoutes(authed gin.IRouter) {
	authed.POST("/competitions/:id/join", s.Join)
	authed.DELETE("/competitions/:id/join", s.Leave)
}

// Join registers the authenticated user for a competition.
func (s *Service) Join(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	p, err := s.app.Join(c.Request.Context(), competitionID, auth.UserID(c))
	switch {
	case errors.Is(err, competition.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
	case errors.Is(err, ErrNotUpcoming):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join competition"})
	default:
		c.JSON(http.StatusCreated, p)
	}
}

// Leave removes the authenticated user's join record.
func (s *Service) Leave(c *gin.Context) {
	competitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	err = s.app.Leave(c.Request.Context(), competitionID, auth.UserID(c))
	switch {
	case errors.Is(err, competition.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
	case errors.Is(err, ErrNotUpcoming):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotJoined):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave competition"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Left competition"})
	}
}
