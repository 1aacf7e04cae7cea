package postgres

import (
	"context"
	"database/sql"

	"confdata/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) ListAll(ctx context.Context) ([]*domain.Speaker, error) {
	query := `
		SELECT s.id, s.name, COALESCE(s.email, ''), COALESCE(s.biography, ''), COALESCE(s.photo, '')
		FROM speakers s
		ORDER BY s.id
	`
	return r.list(ctx, query)
}

func (r *speakerRepository) ListPresenting(ctx context.Context) ([]*domain.Speaker, error) {
	query := `
		SELECT s.id, s.name, COALESCE(s.email, ''), COALESCE(s.biography, ''), COALESCE(s.photo, '')
		FROM speakers s
		WHERE EXISTS (
			SELECT 1 FROM presentations p
			WHERE p.speaker_id = s.id AND p.cancelled = FALSE
		)
		ORDER BY s.name, s.id
	`
	return r.list(ctx, query)
}

func (r *speakerRepository) list(ctx context.Context, query string) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speakers []*domain.Speaker
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Biography, &s.Photo); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}
