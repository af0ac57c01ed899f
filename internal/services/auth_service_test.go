package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usof-platform/usof-backend/internal/cache"
	"github.com/usof-platform/usof-backend/internal/config"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

func setupTestConfig(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret-key",
			ExpireHours: 1,
		},
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)

	user := createTestUser(t, db, "member", models.RoleUser)

	svc := NewAuthService()

	got, token, err := svc.Login(&models.LoginRequest{Login: "member", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "member", claims.Login)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)

	createTestUser(t, db, "member", models.RoleUser)

	svc := NewAuthService()

	_, _, err := svc.Login(&models.LoginRequest{Login: "member", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&models.LoginRequest{Login: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnverifiedEmail(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)

	user := createTestUser(t, db, "pending", models.RoleUser)
	require.NoError(t, db.Model(user).Update("email_verified", false).Error)

	_, _, err := NewAuthService().Login(&models.LoginRequest{Login: "pending", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)

	user := createTestUser(t, db, "pending", models.RoleUser)
	require.NoError(t, db.Model(user).Update("email_verified", false).Error)

	token, err := utils.GenerateVerificationToken(user.ID)
	require.NoError(t, err)

	require.NoError(t, NewAuthService().VerifyEmail(token))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.EmailVerified)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	cache.Blacklist = cache.NewMemoryBlacklist()

	createTestUser(t, db, "member", models.RoleUser)

	svc := NewAuthService()

	_, token, err := svc.Login(&models.LoginRequest{Login: "member", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	revoked, err := cache.Blacklist.Contains(token)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestConfirmPasswordReset(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)

	user := createTestUser(t, db, "member", models.RoleUser)

	token, err := utils.GenerateResetToken(user.Email)
	require.NoError(t, err)

	svc := NewAuthService()
	require.NoError(t, svc.ConfirmPasswordReset(token, "newpassword1"))

	_, _, err = svc.Login(&models.LoginRequest{Login: "member", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&models.LoginRequest{Login: "member", Password: "newpassword1"})
	assert.NoError(t, err)
}
