package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/events"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// StatusStore defines what the app layer needs from the repository
type StatusStore interface {
	TransitionDue(ctx context.Context, edge transitionEdge, now time.Time) ([]models.CompetitionRef, error)
}

// Summary reports one reconciliation pass: which competitions moved along
// each lifecycle edge, and the instant the pass used as now.
type Summary struct {
	ToLive      []models.CompetitionRef `json:"to_live"`
	ToVoting    []models.CompetitionRef `json:"to_voting"`
	ToCompleted []models.CompetitionRef `json:"to_completed"`
	Timestamp   time.Time               `json:"timestamp"`
}

// Moved returns the total number of competitions the pass advanced.
func (s Summary) Moved() int {
	return len(s.ToLive) + len(s.ToVoting) + len(s.ToCompleted)
}

// App drives periodic status reconciliation
type App struct {
	store     StatusStore
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewApp creates a new reconciler App. publisher may be nil.
func NewApp(store StatusStore, publisher events.Publisher, clock clockwork.Clock) *App {
	return &App{
		store:     store,
		publisher: publisher,
		clock:     clock,
	}
}

// ReconcileAll runs one pass over all three lifecycle edges with a single
// now sample, in lifecycle order so an overdue row fast-forwards through
// several edges in the same pass. A failing edge is logged and skipped; the
// remaining edges still run, and the joined error is returned alongside the
// partial summary.
func (a *App) ReconcileAll(ctx context.Context) (Summary, error) {
	now := a.clock.Now()
	summary := Summary{Timestamp: now}
	var errs []error

	for _, edge := range transitions {
		moved, err := a.store.TransitionDue(ctx, edge, now)
		if err != nil {
			log.Error().Err(err).
				Str("from", string(edge.From)).
				Str("to", string(edge.To)).
				Msg("transition failed")
			errs = append(errs, err)
			continue
		}

		for _, ref := range moved {
			log.Info().
				Str("competition_id", ref.ID.String()).
				Str("title", ref.Title).
				Str("from", string(edge.From)).
				Str("to", string(edge.To)).
				Msg("competition transitioned")
			a.publish(edge, ref, now)
		}

		switch edge.To {
		case phase.Live:
			summary.ToLive = moved
		case phase.Voting:
			summary.ToVoting = moved
		case phase.Completed:
			summary.ToCompleted = moved
		}
	}

	return summary, errors.Join(errs...)
}

func (a *App) publish(edge transitionEdge, ref models.CompetitionRef, now time.Time) {
	if a.publisher == nil {
		return
	}
	err := a.publisher.PublishStatusChanged(events.StatusChanged{
		CompetitionID: ref.ID,
		Title:         ref.Title,
		From:          edge.From,
		To:            edge.To,
		OccurredAt:    now,
	})
	if err != nil {
		// The status write already committed; a lost event only delays
		// consumers until their next poll.
		log.Warn().Err(err).
			Str("competition_id", ref.ID.String()).
			Msg("failed to publish status event")
	}
}
