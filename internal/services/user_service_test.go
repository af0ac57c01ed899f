package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usof-platform/usof-backend/internal/models"
)

func TestCreateUserValidation(t *testing.T) {
	setupTestDB(t)

	svc := NewUserService()

	_, err := svc.CreateUser(&models.CreateUserRequest{
		Login:                "new_user",
		Email:                "new@example.com",
		Password:             "password1",
		PasswordConfirmation: "different1",
		Role:                 models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.CreateUser(&models.CreateUserRequest{
		Login:                "new_user",
		Email:                "new@example.com",
		Password:             "password1",
		PasswordConfirmation: "password1",
		Role:                 "moderator",
	})
	assert.Error(t, err)

	user, err := svc.CreateUser(&models.CreateUserRequest{
		Login:                "new_user",
		Email:                "new@example.com",
		Password:             "password1",
		PasswordConfirmation: "password1",
		Role:                 models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	db := setupTestDB(t)

	createTestUser(t, db, "taken", models.RoleUser)

	_, err := NewUserService().CreateUser(&models.CreateUserRequest{
		Login:                "taken",
		Email:                "fresh@example.com",
		Password:             "password1",
		PasswordConfirmation: "password1",
		Role:                 models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrLoginOrEmailTaken)
}

func TestUpdateProfileRoles(t *testing.T) {
	db := setupTestDB(t)

	owner := createTestUser(t, db, "owner", models.RoleUser)
	stranger := createTestUser(t, db, "stranger", models.RoleUser)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	svc := NewUserService()

	// owner edits their own data
	updated, err := svc.UpdateProfile(owner, owner.ID, &models.UpdateProfileRequest{FullName: "Owner Name"})
	require.NoError(t, err)
	assert.Equal(t, "Owner Name", updated.FullName)

	// stranger may not touch someone else's profile
	_, err = svc.UpdateProfile(stranger, owner.ID, &models.UpdateProfileRequest{FullName: "hijack"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// admin changes the target's role but nothing else
	updated, err = svc.UpdateProfile(admin, owner.ID, &models.UpdateProfileRequest{
		Role:     models.RoleAdmin,
		FullName: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, "Owner Name", updated.FullName)
}

func TestDeleteUserRemovesOwnedContent(t *testing.T) {
	db := setupTestDB(t)

	doomed := createTestUser(t, db, "doomed", models.RoleUser)
	survivor := createTestUser(t, db, "survivor", models.RoleUser)

	ownPost := createTestPost(t, db, doomed.ID, "own post")
	otherPost := createTestPost(t, db, survivor.ID, "other post")

	createTestComment(t, db, doomed.ID, otherPost.ID)
	createTestLike(t, db, doomed.ID, &otherPost.ID, nil, models.LikeTypeLike)
	createTestLike(t, db, survivor.ID, &ownPost.ID, nil, models.LikeTypeLike)
	require.NoError(t, db.Create(&models.Favorite{UserID: doomed.ID, PostID: otherPost.ID}).Error)

	require.NoError(t, NewUserService().DeleteUser(doomed.ID))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Post{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Comment{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Like{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Favorite{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
