package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"confdata/internal/delivery/http/helpers"
	"confdata/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Login(t *testing.T) {
	admin := &domain.User{ID: "u-1", Email: "admin@example.test", Name: "Admin"}

	tests := []struct {
		name         string
		body         string
		svc          *fakeAuthService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"email":"admin@example.test","password":"hunter2"}`,
			svc:        &fakeAuthService{token: "jwt", user: admin},
			wantStatus: http.StatusOK,
		},
		{
			name:         "missing password",
			body:         `{"email":"admin@example.test"}`,
			svc:          &fakeAuthService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "invalid credentials",
			body:         `{"email":"admin@example.test","password":"nope"}`,
			svc:          &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "service error",
			body:         `{"email":"admin@example.test","password":"hunter2"}`,
			svc:          &fakeAuthService{err: errors.New("db down")},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
				return
			}
			var envelope struct {
				Data LoginResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			assert.Equal(t, "jwt", envelope.Data.Token)
			assert.Equal(t, "Bearer", envelope.Data.TokenType)
			require.NotNil(t, envelope.Data.User)
			assert.Equal(t, "u-1", envelope.Data.User.ID)
		})
	}
}
