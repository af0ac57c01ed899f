package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Category{},
		&models.Like{},
		&models.Favorite{},
	))

	database.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, login string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Login:         login,
		Email:         login + "@example.com",
		EmailVerified: true,
		Role:          role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  "content of " + title,
		Status:   models.PostStatusActive,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, authorID, postID uint) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Content:  "a comment",
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func createTestLike(t *testing.T, db *gorm.DB, authorID uint, postID, commentID *uint, likeType models.LikeType) *models.Like {
	t.Helper()

	like := &models.Like{
		AuthorID:  authorID,
		PostID:    postID,
		CommentID: commentID,
		Type:      likeType,
	}
	require.NoError(t, db.Create(like).Error)
	return like
}
