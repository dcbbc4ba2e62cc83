package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhampanchal18/fitplanhub/internal/config"
	"github.com/shubhampanchal18/fitplanhub/internal/dto"
	"github.com/shubhampanchal18/fitplanhub/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	t.Run("register issues tokens and defaults to the user role", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{
			Name: "Alice", Email: "alice@example.com", Password: "longenough",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, models.RoleUser, resp.User.Role)
	})

	t.Run("trainer registration", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{
			Name: "Taylor", Email: "taylor@example.com", Password: "longenough", Role: models.RoleTrainer,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleTrainer, resp.User.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Eve", Email: "eve@example.com", Password: "longenough", Role: "admin",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Bob", Email: "bob@example.com", Password: "short",
		})
		assert.Error(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Name: "Alice Again", Email: "alice@example.com", Password: "longenough",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "longenough",
	})
	require.NoError(t, err)

	t.Run("login with valid credentials", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "longenough"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrongpassword"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "longenough"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// The old refresh token is single use.
		_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "longenough"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

		_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
