package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/auth"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// ProfileApp defines what the service layer needs from the profile application
type ProfileApp interface {
	UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// Service exposes profile endpoints
type Service struct {
	app       ProfileApp
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new profile service
func NewService(app ProfileApp, jwtSecret string) *Service {
	return &Service{
		app:       app,
		jwtSecret: jwtSecret,
		tokenTTL:  24 * time.Hour,
	}
}

// RegisterRoutes mounts the public profile endpoints.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", s.Login)
	r.GET("/api/profiles/:username", s.GetByUsername)
}

// Login upserts a profile for the given username and issues a bearer token.
func (s *Service) Login(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, err := s.app.UpsertProfile(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, p.ID, p.Username, s.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "profile": p})
}

// GetByUsername returns a public profile.
func (s *Service) GetByUsername(c *gin.Context) {
	p, err := s.app.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
