package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolforge/schoolforge-api/internal/api"
	"github.com/schoolforge/schoolforge-api/internal/auth"
	"github.com/schoolforge/schoolforge-api/internal/auth/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserStore implements auth.UserStore over a map keyed by email.
type stubUserStore struct {
	byEmail map[string]*auth.User
}

func (s *stubUserStore) Create(ctx context.Context, user *auth.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return auth.ErrEmailExists
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

// stubPasswordVerifier accepts a single plaintext password.
type stubPasswordVerifier struct {
	accepted string
}

func (v *stubPasswordVerifier) Compare(hashedPassword, password string) error {
	if password == v.accepted {
		return nil
	}
	return assert.AnError
}

func newAuthFixture(t *testing.T) (*api.AuthHandler, *auth.User, token.Service) {
	t.Helper()

	tokenService, err := token.NewService(
		"test-secret-key-thats-long-enough!!",
		15*time.Minute,
		12*time.Hour,
	)
	require.NoError(t, err)

	user, err := auth.NewUser("teacher@example.edu", auth.RoleTeacher, auth.TierFree)
	require.NoError(t, err)
	user.HashedPassword = "hashed"

	store := &stubUserStore{byEmail: map[string]*auth.User{user.Email: user}}
	handler := api.NewAuthHandler(store, tokenService, &stubPasswordVerifier{accepted: "correct-horse"})
	return handler, user, tokenService
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		rec := postJSON(t, handler.Login, "/api/auth/login", api.LoginRequest{
			Email:    "teacher@example.edu",
			Password: "correct-horse",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		rec := postJSON(t, handler.Login, "/api/auth/login", api.LoginRequest{
			Email:    "teacher@example.edu",
			Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email returns the same 401 as a wrong password", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		rec := postJSON(t, handler.Login, "/api/auth/login", api.LoginRequest{
			Email:    "nobody@example.edu",
			Password: "correct-horse",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp["error"])
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing email fails validation", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		rec := postJSON(t, handler.Login, "/api/auth/login", api.LoginRequest{Password: "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token returns a fresh pair", func(t *testing.T) {
		t.Parallel()

		handler, user, tokenService := newAuthFixture(t)
		refreshToken, err := tokenService.GenerateRefreshToken(context.Background(), user.ID)
		require.NoError(t, err)

		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", api.RefreshTokenRequest{
			RefreshToken: refreshToken,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		t.Parallel()

		handler, user, tokenService := newAuthFixture(t)
		accessToken, err := tokenService.GenerateAccessToken(context.Background(), user.ID)
		require.NoError(t, err)

		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", api.RefreshTokenRequest{
			RefreshToken: accessToken,
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		t.Parallel()

		handler, _, _ := newAuthFixture(t)
		rec := postJSON(t, handler.RefreshToken, "/api/auth/refresh", api.RefreshTokenRequest{
			RefreshToken: "not.a.token",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
