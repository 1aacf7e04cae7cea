package domain

import (
	"context"
	"slices"
	"time"
)

// RoleSuperuser is the role code required by every data export.
const RoleSuperuser = "superuser"

// User represents an administrative account.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role represents an application role (e.g. superuser, staff)
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// NewRole returns a new Role with the given id and code.
func NewRole(id, code string) *Role {
	return &Role{ID: id, Code: code}
}

// Principal is the authenticated caller carried in a verified token.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the principal holds the given role code.
func (p *Principal) HasRole(code string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, code)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SaveCredentials creates the user or replaces the password of the user
	// with the same email. superuser only ever grants the flag.
	SaveCredentials(ctx context.Context, u *User, superuser bool) (*User, error)
}

// RoleRepository defines the interface for role storage
type RoleRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// AccountService provisions administrator credentials.
type AccountService interface {
	SetPassword(ctx context.Context, email, name, password string, superuser bool) (*User, error)
}

// AuthService authenticates administrators and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
