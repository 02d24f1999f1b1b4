package competition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// ErrNotFound is returned when no competition exists for the given id.
var ErrNotFound = errors.New("competition not found")

// Repository implements competition data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new competition repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const competitionColumns = `id, title, description, prompt, status,
	starts_at, ends_at, voting_ends_at, created_by, created_at, updated_at`

// CreateCompetition inserts a new competition with status derived from its
// window at insert time.
func (r *Repository) CreateCompetition(ctx context.Context, req CreateCompetitionRequest, status phase.Phase) (*models.Competition, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO competitions (id, title, description, prompt, status, starts_at, ends_at, voting_ends_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+competitionColumns,
		uuid.New(), req.Title, req.Description, req.Prompt, string(status),
		req.StartsAt, req.EndsAt, req.VotingEndsAt, req.CreatedBy)

	comp, err := scanCompetition(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return comp, nil
}

// GetCompetition retrieves a competition by ID
func (r *Repository) GetCompetition(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+competitionColumns+` FROM competitions WHERE id = $1`, id)

	comp, err := scanCompetition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	return comp, nil
}

// ListCompetitions retrieves all competitions, newest start first.
func (r *Repository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+competitionColumns+` FROM competitions ORDER BY starts_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	var comps []models.Competition
	for rows.Next() {
		comp, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		comps = append(comps, *comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate competitions: %w", err)
	}
	return comps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompetition(row rowScanner) (*models.Competition, error) {
	var c models.Competition
	var status string
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Prompt, &status,
		&c.StartsAt, &c.EndsAt, &c.VotingEndsAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = phase.Phase(status)
	return &c, nil
}
