package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
)

// Repository implements profile data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const profileColumns = "id, username, github_username, avatar_url, created_at, updated_at"

// UpsertProfile creates a profile for the username or refreshes an existing
// one's GitHub metadata.
func (r *Repository) UpsertProfile(ctx context.Context, req UpsertProfileRequest) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, username, github_username, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET github_username = EXCLUDED.github_username,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = NOW()
		RETURNING `+profileColumns,
		uuid.New(), req.Username, req.GithubUsername, req.AvatarURL)

	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

// GetProfile retrieves a profile by ID
func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByUsername retrieves a profile by username
func (r *Repository) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by username: %w", err)
	}
	return p, nil
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Username, &p.GithubUsername, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
