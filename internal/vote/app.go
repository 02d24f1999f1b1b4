package vote

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// VoteRepository defines what the app layer needs from the repository
type VoteRepository interface {
	CastVote(ctx context.Context, req CastVoteRequest) (*models.Vote, error)
	GetUserVote(ctx context.Context, submissionID, userID uuid.UUID) (*models.Vote, error)
	AuditTallies(ctx context.Context) ([]TallyDrift, error)
}

// SubmissionGetter defines what the app layer needs from the submission
// application.
type SubmissionGetter interface {
	GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SubmissionWithProfile, error)
}

// CompetitionGetter defines what the app layer needs from the competition
// application.
type CompetitionGetter interface {
	GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error)
}

// LeaderboardCache caches ranked leaderboards. Implementations must be safe
// for concurrent use; a nil cache disables caching.
type LeaderboardCache interface {
	Get(ctx context.Context, competitionID uuid.UUID) (*Leaderboard, bool)
	Set(ctx context.Context, board *Leaderboard)
	Invalidate(ctx context.Context, competitionID uuid.UUID)
}

// App handles vote business logic
type App struct {
	repo         VoteRepository
	submissions  SubmissionGetter
	competitions CompetitionGetter
	cache        LeaderboardCache
	clock        clockwork.Clock
}

// NewApp creates a new vote App. cache may be nil.
func NewApp(repo VoteRepository, submissions SubmissionGetter, competitions CompetitionGetter, cache LeaderboardCache, clock clockwork.Clock) *App {
	return &App{
		repo:         repo,
		submissions:  submissions,
		competitions: competitions,
		cache:        cache,
		clock:        clock,
	}
}

// CastVote records or updates the user's answer on a submission. Allowed only
// while the submission's competition is in its voting phase, and never on the
// user's own entry.
func (a *App) CastVote(ctx context.Context, req CastVoteRequest) (*models.Vote, error) {
	sub, err := a.submissions.GetSubmission(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID == req.UserID {
		return nil, ErrSelfVote
	}

	comp, err := a.competitions.GetCompetition(ctx, sub.CompetitionID)
	if err != nil {
		return nil, err
	}
	if !phase.CanVote(comp.EffectiveStatus(a.clock.Now())) {
		return nil, ErrVotingClosed
	}

	v, err := a.repo.CastVote(ctx, req)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Invalidate(ctx, sub.CompetitionID)
	}

	log.Info().
		Str("submission_id", req.SubmissionID.String()).
		Str("user_id", req.UserID.String()).
		Bool("vote", req.Vote).
		Msg("vote cast")
	return v, nil
}

// GetUserVote returns the user's vote on a submission, or nil if absent.
func (a *App) GetUserVote(ctx context.Context, submissionID, userID uuid.UUID) (*models.Vote, error) {
	return a.repo.GetUserVote(ctx, submissionID, userID)
}

// GetLeaderboard returns a competition's submissions ranked by yes votes
// descending, ties broken by submission order. The ranking is deterministic
// for a given set of rows.
func (a *App) GetLeaderboard(ctx context.Context, competitionID uuid.UUID) (*Leaderboard, error) {
	if a.cache != nil {
		if board, ok := a.cache.Get(ctx, competitionID); ok {
			return board, nil
		}
	}

	if _, err := a.competitions.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	subs, err := a.submissions.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	board := &Leaderboard{
		CompetitionID: competitionID,
		Entries:       Rank(subs),
		GeneratedAt:   a.clock.Now(),
	}
	if a.cache != nil {
		a.cache.Set(ctx, board)
	}
	return board, nil
}

// AuditTallies reports submissions whose counters drifted from their vote
// rows. Drift indicates a bug; this endpoint exists to catch it early.
func (a *App) AuditTallies(ctx context.Context) ([]TallyDrift, error) {
	drifts, err := a.repo.AuditTallies(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drifts {
		log.Warn().
			Str("submission_id", d.SubmissionID.String()).
			Int("yes_votes", d.YesVotes).
			Int("counted_yes", d.CountedYes).
			Int("no_votes", d.NoVotes).
			Int("counted_no", d.CountedNo).
			Msg("tally drift detected")
	}
	return drifts, nil
}

// Rank orders submissions by yes votes descending. The input is expected in
// submission order; the stable sort preserves that order among equal tallies,
// so earlier entries rank above later ones.
func Rank(subs []models.SubmissionWithProfile) []RankedSubmission {
	ordered := make([]models.SubmissionWithProfile, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].YesVotes > ordered[j].YesVotes
	})

	ranked := make([]RankedSubmission, len(ordered))
	for i, s := range ordered {
		ranked[i] = RankedSubmission{SubmissionWithProfile: s, Rank: i + 1}
	}
	return ranked
}
