package vote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RomanSlack/Orchestrator-Arena/internal/models"
	"github.com/RomanSlack/Orchestrator-Arena/internal/sqlutil"
)

// Repository implements vote data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new vote repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CastVote records or updates the user's answer on a submission. The vote row
// and the submission's counters move in one transaction so they can never
// drift: a new vote increments one bucket, a flipped vote decrements the old
// bucket and increments the new one, and a same-value re-vote touches nothing.
func (r *Repository) CastVote(ctx context.Context, req CastVoteRequest) (*models.Vote, error) {
	var result *models.Vote
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		var existing models.Vote
		err := tx.QueryRowContext(ctx, `
			SELECT id, submission_id, user_id, vote, comment, created_at
			FROM votes
			WHERE submission_id = $1 AND user_id = $2
			FOR UPDATE`,
			req.SubmissionID, req.UserID).
			Scan(&existing.ID, &existing.SubmissionID, &existing.UserID,
				&existing.Vote, &existing.Comment, &existing.CreatedAt)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			return r.insertVote(ctx, tx, req, &result)
		case err != nil:
			return fmt.Errorf("failed to lock vote: %w", err)
		case existing.Vote == req.Vote:
			// Same answer again: counters stay put, comment may refresh.
			if req.Comment != nil {
				_, err := tx.ExecContext(ctx,
					`UPDATE votes SET comment = $1 WHERE id = $2`,
					req.Comment, existing.ID)
				if err != nil {
					return fmt.Errorf("failed to update vote comment: %w", err)
				}
				existing.Comment = req.Comment
			}
			result = &existing
			return nil
		default:
			return r.flipVote(ctx, tx, req, existing, &result)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) insertVote(ctx context.Context, tx *sql.Tx, req CastVoteRequest, out **models.Vote) error {
	row := tx.QueryRowContext(ctx, `
		INSERT INTO votes (id, submission_id, user_id, vote, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submission_id, user_id, vote, comment, created_at`,
		uuid.New(), req.SubmissionID, req.UserID, req.Vote, req.Comment)

	var v models.Vote
	err := row.Scan(&v.ID, &v.SubmissionID, &v.UserID, &v.Vote, &v.Comment, &v.CreatedAt)
	if sqlutil.IsUniqueViolation(err) {
		// A concurrent cast won the insert race; the caller can retry and
		// will take the update path.
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	column := "no_votes"
	if req.Vote {
		column = "yes_votes"
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE submissions SET `+column+` = `+column+` + 1 WHERE id = $1`,
		req.SubmissionID)
	if err != nil {
		return fmt.Errorf("failed to increment tally: %w", err)
	}

	*out = &v
	return nil
}

func (r *Repository) flipVote(ctx context.Context, tx *sql.Tx, req CastVoteRequest, existing models.Vote, out **models.Vote) error {
	row := tx.QueryRowContext(ctx, `
		UPDATE votes SET vote = $1, comment = COALESCE($2, comment)
		WHERE id = $3
		RETURNING id, submission_id, user_id, vote, comment, created_at`,
		req.Vote, req.Comment, existing.ID)

	var v models.Vote
	if err := row.Scan(&v.ID, &v.SubmissionID, &v.UserID, &v.Vote, &v.Comment, &v.CreatedAt); err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	// Paired move: the old bucket loses what the new bucket gains.
	var stmt string
	if req.Vote {
		stmt = `UPDATE submissions SET yes_votes = yes_votes + 1, no_votes = no_votes - 1 WHERE id = $1`
	} else {
		stmt = `UPDATE submissions SET yes_votes = yes_votes - 1, no_votes = no_votes + 1 WHERE id = $1`
	}
	if _, err := tx.ExecContext(ctx, stmt, req.SubmissionID); err != nil {
		return fmt.Errorf("failed to move tally: %w", err)
	}

	*out = &v
	return nil
}

// GetUserVote returns the user's vote on a submission, or nil if they have
// not voted.
func (r *Repository) GetUserVote(ctx context.Context, submissionID, userID uuid.UUID) (*models.Vote, error) {
	var v models.Vote
	err := r.db.QueryRowContext(ctx, `
		SELECT id, submission_id, user_id, vote, comment, created_at
		FROM votes
		WHERE submission_id = $1 AND user_id = $2`,
		submissionID, userID).
		Scan(&v.ID, &v.SubmissionID, &v.UserID, &v.Vote, &v.Comment, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &v, nil
}

// AuditTallies recomputes every submission's tallies from its vote rows and
// reports the ones whose counters disagree.
func (r *Repository) AuditTallies(ctx context.Context) ([]TallyDrift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.yes_votes, s.no_votes,
		       COUNT(v.id) FILTER (WHERE v.vote),
		       COUNT(v.id) FILTER (WHERE NOT v.vote)
		FROM submissions s
		LEFT JOIN votes v ON v.submission_id = s.id
		GROUP BY s.id, s.yes_votes, s.no_votes
		HAVING s.yes_votes <> COUNT(v.id) FILTER (WHERE v.vote)
		    OR s.no_votes <> COUNT(v.id) FILTER (WHERE NOT v.vote)`)
	if err != nil {
		return nil, fmt.Errorf("failed to audit tallies: %w", err)
	}
	defer rows.Close()

	var drifts []TallyDrift
	for rows.Next() {
		var d TallyDrift
		if err := rows.Scan(&d.SubmissionID, &d.YesVotes, &d.NoVotes, &d.CountedYes, &d.CountedNo); err != nil {
			return nil, fmt.Errorf("failed to scan tally drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tally drifts: %w", err)
	}
	return drifts, nil
}
