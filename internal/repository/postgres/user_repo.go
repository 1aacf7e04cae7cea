package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confdata/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.get(ctx, query, email)
}

func (r *userRepository) SaveCredentials(ctx context.Context, u *domain.User, superuser bool) (*domain.User, error) {
	query := `
		INSERT INTO users (id, email, name, password_hash, salt, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			salt = EXCLUDED.salt,
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE users.name END,
			is_superuser = users.is_superuser OR EXCLUDED.is_superuser,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, query, uuid.NewString(), u.Email, u.Name, u.PasswordHash, u.Salt, superuser, now, now)
	if err != nil {
		return nil, fmt.Errorf("save credentials for %s: %w", u.Email, err)
	}
	return r.GetByEmail(ctx, u.Email)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
