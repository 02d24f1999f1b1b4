package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// signalStore signals once per full pass, on the final lifecycle edge.
type signalStore struct {
	passes chan struct{}
}

func (s *signalStore) TransitionDue(_ context.Context, edge transitionEdge, _ time.Time) ([]models.CompetitionRef, error) {
	if edge.To == phase.Completed {
		s.passes <- struct{}{}
	}
	return nil, nil
}

func TestRunnerTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := &signalStore{passes: make(chan struct{}, 8)}
	runner := NewRunner(NewApp(store, nil, clock), clock, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runner.Run(ctx)

	// One pass runs immediately on startup.
	select {
	case <-store.passes:
	case <-time.After(time.Second):
		t.Fatal("no initial pass")
	}

	// The next pass waits for the ticker.
	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	select {
	case <-store.passes:
	case <-time.After(time.Second):
		t.Fatal("no pass after tick")
	}

	cancel()
}
