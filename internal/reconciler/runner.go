package reconciler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Runner drives the reconciler on a fixed cadence. The external cron route
// remains the primary trigger; the runner is a belt-and-suspenders loop for
// deployments without one.
type Runner struct {
	app      *App
	clock    clockwork.Clock
	interval time.Duration
}

// NewRunner creates a runner that reconciles every interval.
func NewRunner(app *App, clock clockwork.Clock, interval time.Duration) *Runner {
	return &Runner{
		app:      app,
		clock:    clock,
		interval: interval,
	}
}

// Run reconciles once immediately, then on every tick until ctx is
// cancelled. Errors are logged and the loop keeps going; a transient
// database failure must not stop future transitions.
func (r *Runner) Run(ctx context.Context) {
	log.Info().Dur("interval", r.interval).Msg("reconciler runner started")

	r.reconcile(ctx)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reconciler runner stopped")
			return
		case <-ticker.Chan():
			r.reconcile(ctx)
		}
	}
}

func (r *Runner) reconcile(ctx context.Context) {
	summary, err := r.app.ReconcileAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliation pass failed")
	}
	if summary.Moved() > 0 {
		log.Info().
			Int("to_live", len(summary.ToLive)).
			Int("to_voting", len(summary.ToVoting)).
			Int("to_completed", len(summary.ToCompleted)).
			Msg("reconciliation pass advanced competitions")
	}
}
