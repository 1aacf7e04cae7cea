package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confdata/internal/domain"
)

func TestAccountService_SetPassword(t *testing.T) {
	errSalt := errors.New("entropy exhausted")
	errDB := errors.New("db down")

	tests := []struct {
		name      string
		email     string
		password  string
		users     *fakeUserRepo
		hasher    fakeHasher
		wantEmail string
		wantErr   error
	}{
		{
			name:      "creates normalized account",
			email:     " Admin@Example.test ",
			password:  "correct horse",
			users:     &fakeUserRepo{},
			wantEmail: "admin@example.test",
		},
		{name: "missing email", email: "", password: "correct horse", users: &fakeUserRepo{}, wantErr: domain.ErrInvalidInput},
		{name: "short password", email: "a@b.test", password: "short", users: &fakeUserRepo{}, wantErr: domain.ErrInvalidInput},
		{name: "salt failure", email: "a@b.test", password: "correct horse", users: &fakeUserRepo{}, hasher: fakeHasher{saltErr: errSalt}, wantErr: errSalt},
		{name: "repository failure", email: "a@b.test", password: "correct horse", users: &fakeUserRepo{err: errDB}, wantErr: errDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAccountService(tt.users, tt.hasher)
			u, err := svc.SetPassword(context.Background(), tt.email, "Admin", tt.password, true)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, u.Email)
			assert.Equal(t, "salt", u.Salt)
			assert.Equal(t, "salt"+tt.password, u.PasswordHash)
			assert.True(t, tt.users.superuser)
		})
	}
}

func TestAccountService_SetPasswordThenLogin(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserRepo{}
	accounts := NewAccountService(users, fakeHasher{})
	auth := NewAuthService(users, &fakeRoleRepo{}, fakeHasher{}, &fakeIssuer{}, time.Hour)

	_, err := accounts.SetPassword(ctx, "admin@example.test", "Admin", "first password", true)
	require.NoError(t, err)
	_, err = accounts.SetPassword(ctx, "admin@example.test", "", "second password", false)
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "admin@example.test", "first password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	token, u, err := auth.Login(ctx, "admin@example.test", "second password")
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID, token)
	assert.Equal(t, "Admin", u.Name)
	assert.True(t, users.superuser)
}
