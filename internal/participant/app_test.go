package participant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

type fakeRepo struct {
	joined map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{joined: make(map[string]bool)}
}

func key(competitionID, userID uuid.UUID) string {
	return competitionID.String() + "/" + userID.String()
}

func (f *fakeRepo) Join(_ context.Context, competitionID, userID uuid.UUID) (*models.Participant, error) {
	k := key(competitionID, userID)
	if f.joined[k] {
		return nil, ErrAlreadyJoined
	}
	f.joined[k] = true
	return &models.Participant{ID: uuid.New(), CompetitionID: competitionID, UserID: userID}, nil
}

func (f *fakeRepo) Leave(_ context.Context, competitionID, userID uuid.UUID) error {
	k := key(competitionID, userID)
	if !f.joined[k] {
		return ErrNotJoined
	}
	delete(f.joined, k)
	return nil
}

func (f *fakeRepo) CountByCompetition(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.joined), nil
}

func (f *fakeRepo) IsParticipant(_ context.Context, competitionID, userID uuid.UUID) (bool, error) {
	return f.joined[key(competitionID, userID)], nil
}

type fakeCompetitions struct {
	comp *models.Competition
}

func (f *fakeCompetitions) GetCompetition(_ context.Context, _ uuid.UUID) (*models.Competition, error) {
	return f.comp, nil
}

func upcomingCompetition(now time.Time) *models.Competition {
	return &models.Competition{
		ID:           uuid.New(),
		StartsAt:     now.Add(time.Hour),
		EndsAt:       now.Add(3 * time.Hour),
		VotingEndsAt: now.Add(4 * time.Hour),
	}
}

func TestJoinLifecycle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	comp := upcomingCompetition(clock.Now())
	repo := newFakeRepo()
	app := NewApp(repo, &fakeCompetitions{comp: comp}, clock)

	user := uuid.New()
	ctx := context.Background()

	if _, err := app.Join(ctx, comp.ID, user); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := app.Join(ctx, comp.ID, user); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("second join: got %v, want ErrAlreadyJoined", err)
	}
	if err := app.Leave(ctx, comp.ID, user); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if err := app.Leave(ctx, comp.ID, user); !errors.Is(err, ErrNotJoined) {
		t.Errorf("second leave: got %v, want ErrNotJoined", err)
	}
}

func TestJoinClosesAtStartBoundary(t *testing.T) {
	clock := clockwork.NewFakeClock()
	comp := upcomingCompetition(clock.Now())
	app := NewApp(newFakeRepo(), &fakeCompetitions{comp: comp}, clock)
	ctx := context.Background()

	// One second before start: still open.
	clock.Advance(time.Hour - time.Second)
	if _, err := app.Join(ctx, comp.ID, uuid.New()); err != nil {
		t.Errorf("join just before start: %v", err)
	}

	// At the start instant the competition is live and joining closes.
	clock.Advance(time.Second)
	if _, err := app.Join(ctx, comp.ID, uuid.New()); !errors.Is(err, ErrNotUpcoming) {
		t.Errorf("join at start: got %v, want ErrNotUpcoming", err)
	}
	if err := app.Leave(ctx, comp.ID, uuid.New()); !errors.Is(err, ErrNotUpcoming) {
		t.Errorf("leave at start: got %v, want ErrNotUpcoming", err)
	}
}

func TestJoinIgnoresStaleStatusColumn(t *testing.T) {
	// The column was never reconciled and still says upcoming, but the
	// window has opened; the derived phase closes joining anyway.
	clock := clockwork.NewFakeClock()
	now := clock.Now()
	comp := &models.Competition{
		ID:           uuid.New(),
		Status:       "upcoming",
		StartsAt:     now.Add(-time.Minute),
		EndsAt:       now.Add(2 * time.Hour),
		VotingEndsAt: now.Add(3 * time.Hour),
	}
	app := NewApp(newFakeRepo(), &fakeCompetitions{comp: comp}, clock)

	if _, err := app.Join(context.Background(), comp.ID, uuid.New()); !errors.Is(err, ErrNotUpcoming) {
		t.Errorf("got %v, want ErrNotUpcoming", err)
	}
}
