package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/RomanSlack/Orchestrator-Arena/internal/events"
	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// fakeStore mirrors the conditional-update semantics in memory: a row moves
// only when it sits in the edge's from-phase and its boundary has passed.
type fakeStore struct {
	comps   []*models.Competition
	failVia map[phase.Phase]error
}

func (f *fakeStore) TransitionDue(_ context.Context, edge transitionEdge, now time.Time) ([]models.CompetitionRef, error) {
	if err := f.failVia[edge.To]; err != nil {
		return nil, err
	}

	var moved []models.CompetitionRef
	for _, c := range f.comps {
		if c.Status != edge.From {
			continue
		}
		var boundary time.Time
		switch edge.Boundary {
		case "starts_at":
			boundary = c.StartsAt
		case "ends_at":
			boundary = c.EndsAt
		case "voting_ends_at":
			boundary = c.VotingEndsAt
		}
		if boundary.After(now) {
			continue
		}
		c.Status = edge.To
		moved = append(moved, models.CompetitionRef{ID: c.ID, Title: c.Title})
	}
	return moved, nil
}

type fakePublisher struct {
	published []events.StatusChanged
	err       error
}

func (f *fakePublisher) PublishStatusChanged(e events.StatusChanged) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

func comp(title string, status phase.Phase, startsAt time.Time) *models.Competition {
	return &models.Competition{
		ID:           uuid.New(),
		Title:        title,
		Status:       status,
		StartsAt:     startsAt,
		EndsAt:       startsAt.Add(2 * time.Hour),
		VotingEndsAt: startsAt.Add(3 * time.Hour),
	}
}

func TestReconcileAllMovesDueCompetitions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	due := comp("due", phase.Upcoming, now.Add(-time.Minute))
	notDue := comp("not due", phase.Upcoming, now.Add(time.Minute))
	voting := comp("still voting", phase.Live, now.Add(-2*time.Hour))

	store := &fakeStore{comps: []*models.Competition{due, notDue, voting}}
	app := NewApp(store, nil, clock)

	summary, err := app.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAll: %v", err)
	}

	if len(summary.ToLive) != 1 || summary.ToLive[0].ID != due.ID {
		t.Errorf("ToLive = %v, want [%s]", summary.ToLive, due.Title)
	}
	if len(summary.ToVoting) != 1 || summary.ToVoting[0].ID != voting.ID {
		t.Errorf("ToVoting = %v, want [%s]", summary.ToVoting, voting.Title)
	}
	if notDue.Status != phase.Upcoming {
		t.Errorf("future competition moved to %v", notDue.Status)
	}
	if !summary.Timestamp.Equal(now) {
		t.Errorf("summary timestamp = %v, want %v", summary.Timestamp, now)
	}
}

func TestReconcileAllFastForwardsOverdueRows(t *testing.T) {
	// A reconciler that was down for hours catches a row up through every
	// overdue edge in a single pass.
	clock := clockwork.NewFakeClock()
	overdue := comp("overdue", phase.Upcoming, clock.Now().Add(-24*time.Hour))

	store := &fakeStore{comps: []*models.Competition{overdue}}
	app := NewApp(store, nil, clock)

	summary, err := app.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("ReconcileAll: %v", err)
	}

	if overdue.Status != phase.Completed {
		t.Errorf("status = %v, want %v", overdue.Status, phase.Completed)
	}
	if len(summary.ToLive) != 1 || len(summary.ToVoting) != 1 || len(summary.ToCompleted) != 1 {
		t.Errorf("expected the row in every bucket, got %+v", summary)
	}
}

func TestReconcileAllIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	due := comp("due", phase.Upcoming, clock.Now().Add(-time.Minute))

	store := &fakeStore{comps: []*models.Competition{due}}
	app := NewApp(store, nil, clock)

	if _, err := app.ReconcileAll(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := app.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if second.Moved() != 0 {
		t.Errorf("second pass moved %d competitions, want 0", second.Moved())
	}
}

func TestReconcileAllErrorIsolation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	upcoming := comp("stuck", phase.Upcoming, now.Add(-time.Minute))
	live := comp("moves anyway", phase.Live, now.Add(-3*time.Hour))

	edgeErr := errors.New("edge down")
	store := &fakeStore{
		comps:   []*models.Competition{upcoming, live},
		failVia: map[phase.Phase]error{phase.Live: edgeErr},
	}
	app := NewApp(store, nil, clock)

	summary, err := app.ReconcileAll(context.Background())
	if !errors.Is(err, edgeErr) {
		t.Errorf("err = %v, want wrapped %v", err, edgeErr)
	}
	if len(summary.ToVoting) != 1 {
		t.Errorf("later edge should still run, ToVoting = %v", summary.ToVoting)
	}
	if upcoming.Status != phase.Upcoming {
		t.Errorf("failed edge must leave rows untouched, status = %v", upcoming.Status)
	}
}

func TestReconcileAllPublishesEvents(t *testing.T) {
	clock := clockwork.NewFakeClock()
	due := comp("due", phase.Upcoming, clock.Now().Add(-24*time.Hour))

	store := &fakeStore{comps: []*models.Competition{due}}
	pub := &fakePublisher{}
	app := NewApp(store, pub, clock)

	if _, err := app.ReconcileAll(context.Background()); err != nil {
		t.Fatalf("ReconcileAll: %v", err)
	}

	if len(pub.published) != 3 {
		t.Fatalf("published %d events, want 3", len(pub.published))
	}
	want := []phase.Phase{phase.Live, phase.Voting, phase.Completed}
	for i, e := range pub.published {
		if e.To != want[i] || e.CompetitionID != due.ID {
			t.Errorf("event %d = {to=%v id=%v}, want {to=%v id=%v}", i, e.To, e.CompetitionID, want[i], due.ID)
		}
	}
}

func TestReconcileAllPublishFailureDoesNotFailPass(t *testing.T) {
	clock := clockwork.NewFakeClock()
	due := comp("due", phase.Upcoming, clock.Now().Add(-time.Minute))

	store := &fakeStore{comps: []*models.Competition{due}}
	pub := &fakePublisher{err: errors.New("bus down")}
	app := NewApp(store, pub, clock)

	summary, err := app.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("publish failure must not fail the pass: %v", err)
	}
	if len(summary.ToLive) != 1 {
		t.Errorf("transition should still be reported, got %+v", summary)
	}
}
