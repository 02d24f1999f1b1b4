package competition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// CompetitionRepository defines what the app layer needs from the repository
type CompetitionRepository interface {
	CreateCompetition(ctx context.Context, req CreateCompetitionRequest, status phase.Phase) (*models.Competition, error)
	GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
}

// ParticipantCounter defines what the app layer needs from the participant
// application.
type ParticipantCounter interface {
	CountParticipants(ctx context.Context, competitionID uuid.UUID) (int, error)
}

// App handles competition business logic
type App struct {
	repo         CompetitionRepository
	participants ParticipantCounter
	clock        clockwork.Clock
}

// NewApp creates a new competition App
func NewApp(repo CompetitionRepository, participants ParticipantCounter, clock clockwork.Clock) *App {
	return &App{
		repo:         repo,
		participants: participants,
		clock:        clock,
	}
}

// CreateCompetition creates a new competition with validation. The persisted
// status starts at whatever phase the window resolves to right now, so a
// competition created mid-window does not wait for the reconciler.
func (a *App) CreateCompetition(ctx context.Context, req CreateCompetitionRequest) (*models.Competition, error) {
	if err := a.validateCreateCompetitionRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := a.clock.Now()
	status := phase.Resolve(now, req.StartsAt, req.EndsAt, req.VotingEndsAt)

	comp, err := a.repo.CreateCompetition(ctx, req, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	log.Info().
		Str("competition_id", comp.ID.String()).
		Str("title", comp.Title).
		Str("status", string(comp.Status)).
		Msg("created competition")
	return comp, nil
}

// GetCompetition retrieves a competition by ID
func (a *App) GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	comp, err := a.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// GetDetail assembles the competition page view. The persisted status column
// is ignored in favor of the derived phase, and the prompt is blanked while
// the competition is upcoming.
func (a *App) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	comp, err := a.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := a.participants.CountParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	now := a.clock.Now()
	detail := &Detail{
		Competition:      *comp,
		ParticipantCount: count,
	}
	detail.Status = comp.EffectiveStatus(now)
	detail.PromptVisible = phase.PromptVisible(detail.Status)
	if !detail.PromptVisible {
		detail.Prompt = ""
	}
	if next := comp.NextTransition(now); next != nil {
		detail.NextTransition = next
		detail.Countdown = phase.FormatRemaining(next.At.Sub(now))
	}
	return detail, nil
}

// ListCompetitions returns all competitions with derived status and
// participant counts, prompt omitted.
func (a *App) ListCompetitions(ctx context.Context) ([]Summary, error) {
	comps, err := a.repo.ListCompetitions(ctx)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	summaries := make([]Summary, len(comps))
	for i, comp := range comps {
		count, err := a.participants.CountParticipants(ctx, comp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}
		summary := Summary{Competition: comp, ParticipantCount: count}
		summary.Status = comp.EffectiveStatus(now)
		summary.Prompt = ""
		summaries[i] = summary
	}
	return summaries, nil
}

// PhaseInfo resolves the competition's phase and next transition from a
// single clock sample.
func (a *App) PhaseInfo(ctx context.Context, id uuid.UUID) (*PhaseInfo, error) {
	comp, err := a.repo.GetCompetition(ctx, id)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	status := comp.EffectiveStatus(now)
	info := &PhaseInfo{
		Status: status,
		Label:  status.Label(),
		Now:    now,
	}
	if next := comp.NextTransition(now); next != nil {
		info.NextTransition = next
		info.Countdown = phase.FormatRemaining(next.At.Sub(now))
	}
	return info, nil
}

func (a *App) validateCreateCompetitionRequest(req CreateCompetitionRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if req.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if req.CreatedBy == uuid.Nil {
		return fmt.Errorf("created_by is required")
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() || req.VotingEndsAt.IsZero() {
		return fmt.Errorf("starts_at, ends_at and voting_ends_at are required")
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return fmt.Errorf("starts_at must be before ends_at")
	}
	if !req.EndsAt.Before(req.VotingEndsAt) {
		return fmt.Errorf("ends_at must be before voting_ends_at")
	}
	return nil
}
