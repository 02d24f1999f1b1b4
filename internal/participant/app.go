package participant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// ParticipantRepository defines what the app layer needs from the repository
type ParticipantRepository interface {
	Join(ctx context.Context, competitionID, userID uuid.UUID) (*models.Participant, error)
	Leave(ctx context.Context, competitionID, userID uuid.UUID) error
	CountByCompetition(ctx context.Context, competitionID uuid.UUID) (int, error)
	IsParticipant(ctx context.Context, competitionID, userID uuid.UUID) (bool, error)
}

// CompetitionGetter defines what the app layer needs from the competition
// application.
type CompetitionGetter interface {
	GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error)
}

// App handles join/leave business logic
type App struct {
	repo         ParticipantRepository
	competitions CompetitionGetter
	clock        clockwork.Clock
}

// NewApp creates a new participant App
func NewApp(repo ParticipantRepository, competitions CompetitionGetter, clock clockwork.Clock) *App {
	return &App{
		repo:         repo,
		competitions: competitions,
		clock:        clock,
	}
}

// Join registers the user for a competition. Only allowed while the derived
// phase is upcoming; the uniqueness constraint is the backstop for
// concurrent duplicate joins.
func (a *App) Join(ctx context.Context, competitionID, userID uuid.UUID) (*models.Participant, error) {
	comp, err := a.competitions.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	if !phase.CanJoin(comp.EffectiveStatus(now)) {
		return nil, ErrNotUpcoming
	}

	p, err := a.repo.Join(ctx, competitionID, userID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("competition_id", competitionID.String()).
		Str("user_id", userID.String()).
		Msg("user joined competition")
	return p, nil
}

// Leave removes the user's join record. Like Join, only allowed while the
// competition is upcoming.
func (a *App) Leave(ctx context.Context, competitionID, userID uuid.UUID) error {
	comp, err := a.competitions.GetCompetition(ctx, competitionID)
	if err != nil {
		return err
	}

	now := a.clock.Now()
	if !phase.CanJoin(comp.EffectiveStatus(now)) {
		return ErrNotUpcoming
	}

	if err := a.repo.Leave(ctx, competitionID, userID); err != nil {
		return err
	}

	log.Info().
		Str("competition_id", competitionID.String()).
		Str("user_id", userID.String()).
		Msg("user left competition")
	return nil
}

// CountParticipants returns the participant count for a competition.
func (a *App) CountParticipants(ctx context.Context, competitionID uuid.UUID) (int, error) {
	count, err := a.repo.CountByCompetition(ctx, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// IsParticipant reports whether the user has joined the competition.
func (a *App) IsParticipant(ctx context.Context, competitionID, userID uuid.UUID) (bool, error) {
	ok, err := a.repo.IsParticipant(ctx, competitionID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return ok, nil
}
