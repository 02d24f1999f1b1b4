package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// SubmissionRepository defines what the app layer needs from the repository
type SubmissionRepository interface {
	UpsertSubmission(ctx context.Context, req UpsertSubmissionRequest) (*models.Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	GetUserSubmission(ctx context.Context, competitionID, userID uuid.UUID) (*models.Submission, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SubmissionWithProfile, error)
}

// CompetitionGetter defines what the app layer needs from the competition
// application.
type CompetitionGetter interface {
	GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error)
}

// ParticipantChecker defines what the app layer needs from the participant
// application.
type ParticipantChecker interface {
	IsParticipant(ctx context.Context, competitionID, userID uuid.UUID) (bool, error)
}

// App handles submission business logic
type App struct {
	repo         SubmissionRepository
	competitions CompetitionGetter
	participants ParticipantChecker
	clock        clockwork.Clock
}

// NewApp creates a new submission App
func NewApp(repo SubmissionRepository, competitions CompetitionGetter, participants ParticipantChecker, clock clockwork.Clock) *App {
	return &App{
		repo:         repo,
		competitions: competitions,
		participants: participants,
		clock:        clock,
	}
}

// UpsertSubmission creates or edits the user's entry. Allowed only while the
// derived phase is live and only for participants; repository verification
// failures never gate this path.
func (a *App) UpsertSubmission(ctx context.Context, req UpsertSubmissionRequest) (*models.Submission, error) {
	if err := a.validateUpsertSubmissionRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	comp, err := a.competitions.GetCompetition(ctx, req.CompetitionID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	if !phase.CanSubmit(comp.EffectiveStatus(now)) {
		return nil, ErrNotLive
	}

	isParticipant, err := a.participants.IsParticipant(ctx, req.CompetitionID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	sub, err := a.repo.UpsertSubmission(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("competition_id", req.CompetitionID.String()).
		Str("user_id", req.UserID.String()).
		Str("submission_id", sub.ID.String()).
		Msg("submission upserted")
	return sub, nil
}

// GetSubmission retrieves a submission by ID
func (a *App) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	return a.repo.GetSubmission(ctx, id)
}

// GetUserSubmission retrieves the user's entry in a competition.
func (a *App) GetUserSubmission(ctx context.Context, competitionID, userID uuid.UUID) (*models.Submission, error) {
	return a.repo.GetUserSubmission(ctx, competitionID, userID)
}

// ListByCompetition returns a competition's submissions with profiles.
func (a *App) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SubmissionWithProfile, error) {
	subs, err := a.repo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (a *App) validateUpsertSubmissionRequest(req UpsertSubmissionRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(req.Title) > 100 {
		return fmt.Errorf("title is too long")
	}
	if req.Description != nil && len(*req.Description) > 500 {
		return fmt.Errorf("description is too long")
	}
	if req.RepoURL == "" {
		return fmt.Errorf("repo_url is required")
	}
	if !strings.HasPrefix(req.RepoURL, "http://") && !strings.HasPrefix(req.RepoURL, "https://") {
		return fmt.Errorf("repo_url must be a valid URL")
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	return nil
}
