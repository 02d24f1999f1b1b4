package competition

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// CompetitionApp defines what the service layer needs from the competition
// application.
type CompetitionApp interface {
	CreateCompetition(ctx context.Context, req CreateCompetitionRequest) (*models.Competition, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	ListCompetitions(ctx context.Context) ([]Summary, error)
	PhaseInfo(ctx context.Context, id uuid.UUID) (*PhaseInfo, error)
}

// Service exposes competition endpoints
type Service struct {
	app CompetitionApp
}

// NewService creates a new competition service
func NewService(app CompetitionApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts competition endpoints. authed must carry the auth
// middleware; public must not.
func (s *Service) RegisterRoutes(public, authed gin.IRouter) {
	public.GET("/competitions", s.List)
	public.GET("/competitions/:id", s.Get)
	public.GET("/competitions/:id/phase", s.Phase)
	authed.POST("/competitions", s.Create)
}

// List returns all competitions with derived status.
func (s *Service) List(c *gin.Context) {
	summaries, err := s.app.ListCompetitions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list competitions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitions": summaries})
}

// Create creates a competition owned by the authenticated user.
func (s *Service) Create(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	req.CreatedBy = auth.UserID(c)

	comp, err := s.app.CreateCompetition(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comp)
}

// Get returns the competition detail view with a gated prompt.
func (s *Service) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	detail, err := s.app.GetDetail(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get competition"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Phase returns phase + next transition for polling clients.
func (s *Service) Phase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid competition id"})
		return
	}

	info, err := s.app.PhaseInfo(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve phase"})
		return
	}
	c.JSON(http.StatusOK, info)
}
