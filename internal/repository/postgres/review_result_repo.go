package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confdata/internal/domain"
)

type reviewResultRepository struct {
	DB *sql.DB
}

func NewReviewResultRepository(db *sql.DB) domain.ReviewResultRepository {
	return &reviewResultRepository{DB: db}
}

func (r *reviewResultRepository) GetOrCreate(ctx context.Context, proposalID int64) (*domain.ReviewResult, bool, error) {
	insert := `
		INSERT INTO proposal_results (proposal_id, comment_count, score, vote_count, plus_one, plus_zero, minus_zero, minus_one, status)
		VALUES ($1, 0, 0, 0, 0, 0, 0, 0, $2)
		ON CONFLICT (proposal_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, insert, proposalID, string(domain.ReviewStatusUndecided))
	if err != nil {
		return nil, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	query := `
		SELECT proposal_id, comment_count, score, plus_one, plus_zero, minus_zero, minus_one, status
		FROM proposal_results
		WHERE proposal_id = $1
	`
	out := &domain.ReviewResult{}
	var status string
	err = r.DB.QueryRowContext(ctx, query, proposalID).Scan(
		&out.ProposalID, &out.CommentCount, &out.Score, &out.PlusOne, &out.PlusZero, &out.MinusZero, &out.MinusOne, &status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, err
	}
	out.Status = domain.ReviewStatus(status)
	return out, affected > 0, nil
}
