package services

import (
	"context"
	"fmt"
	"strings"

	"confdata/internal/domain"
)

const minPasswordLength = 8

type accountService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
}

// NewAccountService creates an AccountService that stores salted password hashes.
func NewAccountService(userRepo domain.UserRepository, hasher domain.PasswordHasher) domain.AccountService {
	return &accountService{userRepo: userRepo, hasher: hasher}
}

func (s *accountService) SetPassword(ctx context.Context, email, name, password string, superuser bool) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.SaveCredentials(ctx, &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
	}, superuser)
	if err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	return user, nil
}
