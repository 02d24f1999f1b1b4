package reconciler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/phase"
)

// Repository implements status reconciliation data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new reconciler repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// transitionEdge describes one forward edge of the lifecycle: rows still in
// From whose boundary column has passed move to To.
type transitionEdge struct {
	From     phase.Phase
	To       phase.Phase
	Boundary string
}

// transitions lists the three forward edges in lifecycle order. Running them
// in this order lets a single pass fast-forward a row through multiple
// overdue transitions.
var transitions = []transitionEdge{
	{From: phase.Upcoming, To: phase.Live, Boundary: "starts_at"},
	{From: phase.Live, To: phase.Voting, Boundary: "ends_at"},
	{From: phase.Voting, To: phase.Completed, Boundary: "voting_ends_at"},
}

// TransitionDue advances every competition sitting in edge.From whose
// boundary instant is at or before now, and returns the rows that moved.
// The WHERE clause makes the write conditional and one-way: concurrent
// reconcilers may race, but each row transitions exactly once and never
// moves backward.
func (r *Repository) TransitionDue(ctx context.Context, edge transitionEdge, now time.Time) ([]models.CompetitionRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		UPDATE competitions
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND `+edge.Boundary+` <= $3
		RETURNING id, title`,
		edge.To, edge.From, now)
	if err != nil {
		return nil, fmt.Errorf("failed to transition %s to %s: %w", edge.From, edge.To, err)
	}
	defer rows.Close()

	var moved []models.CompetitionRef
	for rows.Next() {
		var ref models.CompetitionRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, fmt.Errorf("failed to scan transitioned competition: %w", err)
		}
		moved = append(moved, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transitioned competitions: %w", err)
	}
	return moved, nil
}
