package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/cache"
	"github.com/usof-platform/usof-backend/internal/config"
	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

func setupTestEnv(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret-key",
			ExpireHours: 1,
		},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
	}
	cache.Blacklist = cache.NewMemoryBlacklist()

	return db
}

func createVerifiedUser(t *testing.T, db *gorm.DB, login string, role models.UserRole) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Login:         login,
		Email:         login + "@example.com",
		EmailVerified: true,
		Role:          role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateToken(user.ID, user.Login, string(user.Role))
	require.NoError(t, err)
	return user, token
}

func TestHealthEndpoint(t *testing.T) {
	setupTestEnv(t)
	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequiredForProtectedRoutes(t *testing.T) {
	setupTestEnv(t)
	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRevokedTokenRejected(t *testing.T) {
	db := setupTestEnv(t)
	_, token := createVerifiedUser(t, db, "member", models.RoleUser)
	require.NoError(t, cache.Blacklist.Add(token))

	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCategoryCreationIsAdminOnly(t *testing.T) {
	db := setupTestEnv(t)
	_, userToken := createVerifiedUser(t, db, "member", models.RoleUser)
	_, adminToken := createVerifiedUser(t, db, "boss", models.RoleAdmin)

	router := SetupRoutes()
	body, _ := json.Marshal(models.CategoryRequest{Title: "go", Description: "all things go"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+userToken)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAndFetchPost(t *testing.T) {
	db := setupTestEnv(t)
	_, token := createVerifiedUser(t, db, "author", models.RoleUser)

	router := SetupRoutes()

	body, _ := json.Marshal(models.CreatePostRequest{
		Title:   "how do I range over a channel",
		Content: "the for loop never terminates",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// the new post is publicly readable
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.PostResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "how do I range over a channel", resp.Data.Title)
}

func TestPostListCarriesPagination(t *testing.T) {
	db := setupTestEnv(t)
	user, _ := createVerifiedUser(t, db, "author", models.RoleUser)

	post := &models.Post{AuthorID: user.ID, Title: "post", Content: "body", Status: models.PostStatusActive}
	require.NoError(t, db.Create(post).Error)

	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, utils.DefaultPageSize, resp.Size)
}

func TestUserListReturnsRefreshedRatings(t *testing.T) {
	db := setupTestEnv(t)
	author, token := createVerifiedUser(t, db, "author", models.RoleUser)
	voter, _ := createVerifiedUser(t, db, "voter", models.RoleUser)

	post := &models.Post{AuthorID: author.ID, Title: "post", Content: "body", Status: models.PostStatusActive}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&models.Like{AuthorID: voter.ID, PostID: &post.ID, Type: models.LikeTypeLike}).Error)

	// the stored aggregate is still stale
	var stored models.User
	require.NoError(t, db.First(&stored, author.ID).Error)
	require.Equal(t, 0, stored.Rating)

	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	found := false
	for _, u := range resp.Data {
		if u.ID == author.ID {
			found = true
			assert.Equal(t, 1, u.Rating)
		}
	}
	assert.True(t, found)
}

func TestPasswordResetRequiresAuth(t *testing.T) {
	setupTestEnv(t)
	router := SetupRoutes()

	body, _ := json.Marshal(models.ResetPasswordRequest{Email: "someone@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/password-reset", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/password-reset/some-token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyEmailIsPosted(t *testing.T) {
	db := setupTestEnv(t)
	user, _ := createVerifiedUser(t, db, "pending", models.RoleUser)
	require.NoError(t, db.Model(user).Update("email_verified", false).Error)

	token, err := utils.GenerateVerificationToken(user.ID)
	require.NoError(t, err)

	router := SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-email/"+token, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.EmailVerified)
}

func TestCommentLikesArePublic(t *testing.T) {
	db := setupTestEnv(t)
	user, _ := createVerifiedUser(t, db, "author", models.RoleUser)

	post := &models.Post{AuthorID: user.ID, Title: "post", Content: "body", Status: models.PostStatusActive}
	require.NoError(t, db.Create(post).Error)
	comment := &models.Comment{AuthorID: user.ID, PostID: post.ID, Content: "comment"}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(&models.Like{AuthorID: user.ID, CommentID: &comment.ID, Type: models.LikeTypeLike}).Error)

	router := SetupRoutes()

	// no Authorization header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments/1/like", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.LikeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestLikeRequiresValidType(t *testing.T) {
	db := setupTestEnv(t)
	user, token := createVerifiedUser(t, db, "author", models.RoleUser)

	post := &models.Post{AuthorID: user.ID, Title: "post", Content: "body", Status: models.PostStatusActive}
	require.NoError(t, db.Create(post).Error)

	router := SetupRoutes()

	body, _ := json.Marshal(map[string]string{"type": "superlike"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/1/like", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
