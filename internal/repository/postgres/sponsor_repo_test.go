package postgres

import (
	"context"
	"database/sql"
	"testing"

	"confdata/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sponsorColumns = []string{"id", "name", "contact_name", "contact_email", "active", "web_logo", "listing_text", "level_id", "level_name", "level_order"}

func TestSponsorRepository_ListActive(t *testing.T) {
	tests := []struct {
		name    string
		order   domain.SponsorOrder
		orderBy string
	}{
		{"by level", domain.SponsorOrderByLevel, `ORDER BY l."order", l.name, s.id`},
		{"by level and name", domain.SponsorOrderByLevelAndName, `ORDER BY l."order", s.name, s.id`},
		{"unknown order falls back to level", domain.SponsorOrder(99), `ORDER BY l."order", l.name, s.id`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(func(_, actual string) error {
				if !assert.Contains(t, actual, "WHERE s.active = TRUE") || !assert.Contains(t, actual, tt.orderBy) {
					return sql.ErrNoRows
				}
				return nil
			})))
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery("").
				WillReturnRows(sqlmock.NewRows(sponsorColumns).
					AddRow(7, "Acme", "Jane Q. Public", "jane@acme.test", true, "logos/acme.png", "We make things", 1, "Gold", 2))

			got, err := NewSponsorRepository(db).ListActive(context.Background(), tt.order)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, &domain.Sponsor{
				ID:           7,
				Name:         "Acme",
				Level:        domain.SponsorLevel{ID: 1, Name: "Gold", Order: 2},
				ContactName:  "Jane Q. Public",
				ContactEmail: "jane@acme.test",
				Active:       true,
				WebLogo:      "logos/acme.png",
				ListingText:  "We make things",
			}, got[0])
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
