package competition

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

type fakeRepo struct {
	comps map[uuid.UUID]*models.Competition
}

func newFakeRepo(comps ...*models.Competition) *fakeRepo {
	f := &fakeRepo{comps: make(map[uuid.UUID]*models.Competition)}
	for _, c := range comps {
		f.comps[c.ID] = c
	}
	return f
}

func (f *fakeRepo) CreateCompetition(_ context.Context, req CreateCompetitionRequest, status phase.Phase) (*models.Competition, error) {
	c := &models.Competition{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Prompt:       req.Prompt,
		Status:       status,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		VotingEndsAt: req.VotingEndsAt,
		CreatedBy:    req.CreatedBy,
	}
	f.comps[c.ID] = c
	return c, nil
}

func (f *fakeRepo) GetCompetition(_ context.Context, id uuid.UUID) (*models.Competition, error) {
	c, ok := f.comps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListCompetitions(_ context.Context) ([]models.Competition, error) {
	var out []models.Competition
	for _, c := range f.comps {
		out = append(out, *c)
	}
	return out, nil
}

type fixedCounter int

func (c fixedCounter) CountParticipants(context.Context, uuid.UUID) (int, error) {
	return int(c), nil
}

func validRequest(now time.Time) CreateCompetitionRequest {
	return CreateCompetitionRequest{
		Title:        "Weekend Arena",
		Description:  "Build something",
		Prompt:       "Build an agent orchestrator",
		StartsAt:     now.Add(time.Hour),
		EndsAt:       now.Add(3 * time.Hour),
		VotingEndsAt: now.Add(4 * time.Hour),
		CreatedBy:    uuid.New(),
	}
}

func TestCreateCompetitionInitialStatus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()
	app := NewApp(newFakeRepo(), fixedCounter(0), clock)

	tests := []struct {
		name   string
		starts time.Time
		want   phase.Phase
	}{
		{"future start", now.Add(time.Hour), phase.Upcoming},
		{"mid window", now.Add(-time.Hour), phase.Live},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(now)
			req.StartsAt = tt.starts
			req.EndsAt = tt.starts.Add(2 * time.Hour)
			req.VotingEndsAt = tt.starts.Add(3 * time.Hour)

			comp, err := app.CreateCompetition(context.Background(), req)
			if err != nil {
				t.Fatalf("CreateCompetition: %v", err)
			}
			if comp.Status != tt.want {
				t.Errorf("initial status = %v, want %v", comp.Status, tt.want)
			}
		})
	}
}

func TestCreateCompetitionValidation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()
	app := NewApp(newFakeRepo(), fixedCounter(0), clock)

	tests := []struct {
		name   string
		mutate func(*CreateCompetitionRequest)
		want   string
	}{
		{"missing title", func(r *CreateCompetitionRequest) { r.Title = "" }, "title"},
		{"missing prompt", func(r *CreateCompetitionRequest) { r.Prompt = "" }, "prompt"},
		{"start equals end", func(r *CreateCompetitionRequest) { r.EndsAt = r.StartsAt }, "starts_at"},
		{"end after voting end", func(r *CreateCompetitionRequest) { r.VotingEndsAt = r.EndsAt.Add(-time.Minute) }, "ends_at"},
		{"missing creator", func(r *CreateCompetitionRequest) { r.CreatedBy = uuid.Nil }, "created_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(now)
			tt.mutate(&req)
			_, err := app.CreateCompetition(context.Background(), req)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestGetDetailHidesPromptWhileUpcoming(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	comp := &models.Competition{
		ID:           uuid.New(),
		Title:        "Weekend Arena",
		Prompt:       "secret until start",
		Status:       phase.Upcoming,
		StartsAt:     now.Add(time.Hour),
		EndsAt:       now.Add(3 * time.Hour),
		VotingEndsAt: now.Add(4 * time.Hour),
	}
	app := NewApp(newFakeRepo(comp), fixedCounter(7), clock)

	detail, err := app.GetDetail(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.PromptVisible || detail.Prompt != "" {
		t.Errorf("prompt leaked before start: visible=%v prompt=%q", detail.PromptVisible, detail.Prompt)
	}
	if detail.ParticipantCount != 7 {
		t.Errorf("participant count = %d, want 7", detail.ParticipantCount)
	}
	if detail.NextTransition == nil || detail.NextTransition.Phase != phase.Live {
		t.Errorf("next transition = %+v, want live", detail.NextTransition)
	}
	if detail.Countdown != "1h 0m" {
		t.Errorf("countdown = %q, want %q", detail.Countdown, "1h 0m")
	}
}

func TestGetDetailDerivedStatusOverridesColumn(t *testing.T) {
	// The reconciler hasn't run yet: the column still says upcoming but the
	// window opened a minute ago.
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	comp := &models.Competition{
		ID:           uuid.New(),
		Prompt:       "visible now",
		Status:       phase.Upcoming,
		StartsAt:     now.Add(-time.Minute),
		EndsAt:       now.Add(2 * time.Hour),
		VotingEndsAt: now.Add(3 * time.Hour),
	}
	app := NewApp(newFakeRepo(comp), fixedCounter(0), clock)

	detail, err := app.GetDetail(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.Status != phase.Live {
		t.Errorf("status = %v, want %v", detail.Status, phase.Live)
	}
	if !detail.PromptVisible || detail.Prompt != "visible now" {
		t.Errorf("prompt should be visible once live")
	}
}

func TestPhaseInfo(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	comp := &models.Competition{
		ID:           uuid.New(),
		Status:       phase.Live,
		StartsAt:     now.Add(-3 * time.Hour),
		EndsAt:       now.Add(-time.Hour),
		VotingEndsAt: now.Add(30 * time.Minute),
	}
	app := NewApp(newFakeRepo(comp), fixedCounter(0), clock)

	info, err := app.PhaseInfo(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("PhaseInfo: %v", err)
	}
	if info.Status != phase.Voting || info.Label != "Voting" {
		t.Errorf("status = %v/%q, want voting", info.Status, info.Label)
	}
	if info.NextTransition == nil || info.NextTransition.Phase != phase.Completed {
		t.Errorf("next transition = %+v, want completed", info.NextTransition)
	}
	if info.Countdown != "30m 0s" {
		t.Errorf("countdown = %q, want %q", info.Countdown, "30m 0s")
	}
	if !info.Now.Equal(now) {
		t.Errorf("now = %v, want %v", info.Now, now)
	}
}

func TestPhaseInfoCompleted(t *testing.T) {
	clock := clockwork.NewFakeClock()
	now := clock.Now()

	comp := &models.Competition{
		ID:           uuid.New(),
		StartsAt:     now.Add(-4 * time.Hour),
		EndsAt:       now.Add(-2 * time.Hour),
		VotingEndsAt: now.Add(-time.Hour),
	}
	app := NewApp(newFakeRepo(comp), fixedCounter(0), clock)

	info, err := app.PhaseInfo(context.Background(), comp.ID)
	if err != nil {
		t.Fatalf("PhaseInfo: %v", err)
	}
	if info.Status != phase.Completed {
		t.Errorf("status = %v, want completed", info.Status)
	}
	if info.NextTransition != nil || info.Countdown != "" {
		t.Errorf("completed competitions have no next transition, got %+v %q", info.NextTransition, info.Countdown)
	}
}
