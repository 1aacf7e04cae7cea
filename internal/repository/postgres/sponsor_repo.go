package postgres

import (
	"context"
	"database/sql"

	"confdata/internal/domain"
)

var sponsorOrderBy = map[domain.SponsorOrder]string{
	domain.SponsorOrderByLevel:        `l."order", l.name, s.id`,
	domain.SponsorOrderByLevelAndName: `l."order", s.name, s.id`,
}

type sponsorRepository struct {
	DB *sql.DB
}

func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

func (r *sponsorRepository) ListActive(ctx context.Context, order domain.SponsorOrder) ([]*domain.Sponsor, error) {
	orderBy, ok := sponsorOrderBy[order]
	if !ok {
		orderBy = sponsorOrderBy[domain.SponsorOrderByLevel]
	}
	query := `
		SELECT s.id, s.name, COALESCE(s.contact_name, ''), COALESCE(s.contact_email, ''), s.active,
		       COALESCE(s.web_logo, ''), COALESCE(s.listing_text, ''),
		       l.id, l.name, l."order"
		FROM sponsors s
		INNER JOIN sponsor_levels l ON l.id = s.level_id
		WHERE s.active = TRUE
		ORDER BY ` + orderBy
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsors []*domain.Sponsor
	for rows.Next() {
		s := &domain.Sponsor{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactEmail, &s.Active,
			&s.WebLogo, &s.ListingText, &s.Level.ID, &s.Level.Name, &s.Level.Order); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}
