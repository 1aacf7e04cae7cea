package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"confdata/internal/domain"
)

type proposalRepository struct {
	DB *sql.DB
}

func NewProposalRepository(db *sql.DB) domain.ProposalRepository {
	return &proposalRepository{DB: db}
}

func (r *proposalRepository) ListAll(ctx context.Context) ([]*domain.Proposal, error) {
	query := fmt.Sprintf(`
		SELECT p.id, k.name, k.slug, p.title, p.cancelled,
		       sp.id, sp.name, COALESCE(sp.email, ''),
		       %s,
		       r.proposal_id, r.comment_count, r.score, r.plus_one, r.plus_zero, r.minus_zero, r.minus_one, r.status
		FROM proposals p
		INNER JOIN proposal_kinds k ON k.id = p.kind_id
		INNER JOIN speakers sp ON sp.id = p.speaker_id
		%s
		LEFT JOIN proposal_results r ON r.proposal_id = p.id
		ORDER BY p.id
	`, variantSelect, fmt.Sprintf(variantJoins, "p.id"))
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*domain.Proposal
	for rows.Next() {
		p := &domain.Proposal{}
		var v variantColumns
		var res nullableResult
		dest := []any{&p.ID, &p.Kind.Name, &p.Kind.Slug, &p.Title, &p.Cancelled, &p.SpeakerID, &p.SpeakerName, &p.SpeakerEmail}
		dest = append(dest, v.dest()...)
		dest = append(dest, res.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		p.Variant = v.resolve()
		p.Result = res.result()
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// nullableResult receives the LEFT JOINed proposal_results columns.
type nullableResult struct {
	proposalID   sql.NullInt64
	commentCount sql.NullInt64
	score        sql.NullFloat64
	plusOne      sql.NullInt64
	plusZero     sql.NullInt64
	minusZero    sql.NullInt64
	minusOne     sql.NullInt64
	status       sql.NullString
}

func (n *nullableResult) dest() []any {
	return []any{&n.proposalID, &n.commentCount, &n.score, &n.plusOne, &n.plusZero, &n.minusZero, &n.minusOne, &n.status}
}

func (n *nullableResult) result() *domain.ReviewResult {
	if !n.proposalID.Valid {
		return nil
	}
	res := &domain.ReviewResult{
		ProposalID:   n.proposalID.Int64,
		CommentCount: int(n.commentCount.Int64),
		Score:        n.score.Float64,
		PlusOne:      int(n.plusOne.Int64),
		PlusZero:     int(n.plusZero.Int64),
		MinusZero:    int(n.minusZero.Int64),
		MinusOne:     int(n.minusOne.Int64),
		Status:       domain.ReviewStatus(n.status.String),
	}
	if res.Status == "" {
		res.Status = domain.ReviewStatusUndecided
	}
	return res
}
