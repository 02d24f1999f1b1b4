package participant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/sqlutil"
)

// Repository implements participant data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new participant repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Join inserts a join record. The (competition_id, user_id) uniqueness
// constraint rejects duplicate concurrent joins; those surface as
// ErrAlreadyJoined.
func (r *Repository) Join(ctx context.Context, competitionID, userID uuid.UUID) (*models.Participant, error) {
	var p models.Participant
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO participants (id, competition_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, competition_id, user_id, joined_at`,
		uuid.New(), competitionID, userID).
		Scan(&p.ID, &p.CompetitionID, &p.UserID, &p.JoinedAt)
	if sqlutil.IsUniqueViolation(err) {
		return nil, ErrAlreadyJoined
	}
	if err != nil {
		return nil, fmt.Errorf("failed to join competition: %w", err)
	}
	return &p, nil
}

// Leave deletes the user's join record.
func (r *Repository) Leave(ctx context.Context, competitionID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM participants WHERE competition_id = $1 AND user_id = $2`,
		competitionID, userID)
	if err != nil {
		return fmt.Errorf("failed to leave competition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotJoined
	}
	return nil
}

// CountByCompetition returns the number of participants in a competition.
func (r *Repository) CountByCompetition(ctx context.Context, competitionID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE competition_id = $1`, competitionID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// IsParticipant reports whether the user has joined the competition.
func (r *Repository) IsParticipant(ctx context.Context, competitionID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM participants WHERE competition_id = $1 AND user_id = $2
		)`, competitionID, userID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return exists, nil
}
