package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// Repository implements submission data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new submission repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const submissionColumns = `id, competition_id, user_id, title, description,
	repo_url, demo_url, repo_created_at, submitted_at, yes_votes, no_votes`

// UpsertSubmission inserts the user's entry or replaces its content. The
// (competition_id, user_id) uniqueness constraint makes concurrent submits
// by the same user converge on a single row; vote counters are never touched
// here.
func (r *Repository) UpsertSubmission(ctx context.Context, req UpsertSubmissionRequest) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO submissions (id, competition_id, user_id, title, description, repo_url, demo_url, repo_created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (competition_id, user_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    repo_url = EXCLUDED.repo_url,
		    demo_url = EXCLUDED.demo_url,
		    repo_created_at = EXCLUDED.repo_created_at,
		    submitted_at = NOW()
		RETURNING `+submissionColumns,
		uuid.New(), req.CompetitionID, req.UserID, req.Title, req.Description,
		req.RepoURL, req.DemoURL, req.RepoCreatedAt)

	sub, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert submission: %w", err)
	}
	return sub, nil
}

// GetSubmission retrieves a submission by ID
func (r *Repository) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)

	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

// GetUserSubmission retrieves a user's entry in a competition, or ErrNotFound.
func (r *Repository) GetUserSubmission(ctx context.Context, competitionID, userID uuid.UUID) (*models.Submission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE competition_id = $1 AND user_id = $2`,
		competitionID, userID)

	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user submission: %w", err)
	}
	return sub, nil
}

// ListByCompetition returns a competition's submissions with submitter
// profiles joined in, in insertion order.
func (r *Repository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SubmissionWithProfile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.competition_id, s.user_id, s.title, s.description,
		       s.repo_url, s.demo_url, s.repo_created_at, s.submitted_at, s.yes_votes, s.no_votes,
		       p.id, p.username, p.github_username, p.avatar_url, p.created_at, p.updated_at
		FROM submissions s
		JOIN profiles p ON p.id = s.user_id
		WHERE s.competition_id = $1
		ORDER BY s.submitted_at, s.id`,
		competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.SubmissionWithProfile
	for rows.Next() {
		var s models.SubmissionWithProfile
		err := rows.Scan(
			&s.ID, &s.CompetitionID, &s.UserID, &s.Title, &s.Description,
			&s.RepoURL, &s.DemoURL, &s.RepoCreatedAt, &s.SubmittedAt, &s.YesVotes, &s.NoVotes,
			&s.Profile.ID, &s.Profile.Username, &s.Profile.GithubUsername,
			&s.Profile.AvatarURL, &s.Profile.CreatedAt, &s.Profile.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return subs, nil
}

func scanSubmission(row *sql.Row) (*models.Submission, error) {
	var s models.Submission
	err := row.Scan(&s.ID, &s.CompetitionID, &s.UserID, &s.Title, &s.Description,
		&s.RepoURL, &s.DemoURL, &s.RepoCreatedAt, &s.SubmittedAt, &s.YesVotes, &s.NoVotes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
