package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/RomanSlack/Orchestrator-Arena/clients/github_client"
	"github.com/RomanSlack/Orchestrator-Arena/internal/competition"
	"github.com/RomanSlack/Orchestrator-Arena/internal/events"
	"github.com/RomanSlack/Orchestrator-Arena/internal/github"
	"github.com/RomanSlack/Orchestrator-Arena/internal/participant"
	"github.com/RomanSlack/Orchestrator-Arena/internal/profile"
	"github.com/RomanSlack/Orchestrator-Arena/internal/reconciler"
	"github.com/RomanSlack/Orchestrator-Arena/internal/submission"
	"github.com/RomanSlack/Orchestrator-Arena/internal/vote"
)

type Services struct {
	Profile     *profile.Service
	Competition *competition.Service
	Participant *participant.Service
	Submission  *submission.Service
	Vote        *vote.Service
	Reconciler  *reconciler.Service
	Github      *github.Service

	// ReconcilerApp backs both the cron route and the in-process runner.
	ReconcilerApp *reconciler.App
}

func setupServices(database *sql.DB, redisClient *redis.Client, natsConn *nats.Conn, clock clockwork.Clock, jwtSecret string) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Profiles
	profileRepo := profile.NewRepository(database)
	profileApp := profile.NewApp(profileRepo)
	profileService := profile.NewService(profileApp, jwtSecret)

	// Participants gate on the raw competition row, so the repository is
	// enough; going through the competition app here would be circular.
	competitionRepo := competition.NewRepository(database)
	participantRepo := participant.NewRepository(database)
	participantApp := participant.NewApp(participantRepo, competitionRepo, clock)
	participantService := participant.NewService(participantApp)

	// Competitions
	competitionApp := competition.NewApp(competitionRepo, participantApp, clock)
	competitionService := competition.NewService(competitionApp)

	// Submissions
	submissionRepo := submission.NewRepository(database)
	submissionApp := submission.NewApp(submissionRepo, competitionApp, participantApp, clock)
	submissionService := submission.NewService(submissionApp)

	// Votes; the leaderboard cache is optional
	var cache vote.LeaderboardCache
	if redisClient != nil {
		cache = vote.NewRedisCache(redisClient)
	}
	voteRepo := vote.NewRepository(database)
	voteApp := vote.NewApp(voteRepo, submissionApp, competitionApp, cache, clock)
	voteService := vote.NewService(voteApp)

	// Reconciler; the event publisher is optional
	var publisher events.Publisher
	if natsConn != nil {
		publisher = events.NewNATSPublisher(natsConn)
	}
	reconcilerRepo := reconciler.NewRepository(database)
	reconcilerApp := reconciler.NewApp(reconcilerRepo, publisher, clock)
	reconcilerService := reconciler.NewService(reconcilerApp, voteApp)

	// GitHub verification
	githubClient := github_client.NewGithubClient(getEnv("GITHUB_TOKEN", ""))
	githubService := github.NewService(githubClient)

	return &Services{
		Profile:       profileService,
		Competition:   competitionService,
		Participant:   participantService,
		Submission:    submissionService,
		Vote:          voteService,
		Reconciler:    reconcilerService,
		Github:        githubService,
		ReconcilerApp: reconcilerApp,
	}
}
