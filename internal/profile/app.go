package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// ProfileRepository defines what the app layer needs from the repository
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// App handles profile business logic
type App struct {
	repo ProfileRepository
}

// NewApp creates a new profile App
func NewApp(repo ProfileRepository) *App {
	return &App{repo: repo}
}

// UpsertProfile creates or refreshes a profile with validation
func (a *App) UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*models.Profile, error) {
	if err := a.validateUpsertProfileRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.repo.UpsertProfile(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	log.Info().Str("username", p.Username).Str("profile_id", p.ID.String()).Msg("profile upserted")
	return p, nil
}

// GetProfile retrieves a profile by ID
func (a *App) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := a.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByUsername retrieves a profile by username
func (a *App) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	p, err := a.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by username: %w", err)
	}
	return p, nil
}

func (a *App) validateUpsertProfileRequest(req UpsertProfileRequest) error {
	if req.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(req.Username) < 2 || len(req.Username) > 50 {
		return fmt.Errorf("username must be 2-50 characters")
	}
	if req.GithubUsername == "" {
		return fmt.Errorf("github_username is required")
	}
	return nil
}
