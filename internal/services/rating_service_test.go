package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usof-platform/usof-backend/internal/models"
)

func likesOf(types ...models.LikeType) []models.Like {
	likes := make([]models.Like, 0, len(types))
	for _, typ := range types {
		likes = append(likes, models.Like{Type: typ})
	}
	return likes
}

func TestComputeRatingStandard(t *testing.T) {
	tests := []struct {
		name  string
		likes []models.Like
		want  int
	}{
		{"no likes", nil, 0},
		{"single like", likesOf(models.LikeTypeLike), 1},
		{"single dislike stays at zero", likesOf(models.LikeTypeDislike), 0},
		{"like like dislike", likesOf(models.LikeTypeLike, models.LikeTypeLike, models.LikeTypeDislike), 1},
		// the fold is order dependent: a leading dislike is a no-op
		{"dislike like like", likesOf(models.LikeTypeDislike, models.LikeTypeLike, models.LikeTypeLike), 2},
		{"dislike only decrements above zero", likesOf(models.LikeTypeLike, models.LikeTypeDislike, models.LikeTypeDislike, models.LikeTypeLike), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRating(tt.likes, RatingModeStandard))
		})
	}
}

func TestComputeRatingExistingLikeMode(t *testing.T) {
	// every step is folded with weight 2
	assert.Equal(t, 4, ComputeRating(likesOf(models.LikeTypeLike, models.LikeTypeLike), RatingModeExistingLike))
	assert.Equal(t, 0, ComputeRating(likesOf(models.LikeTypeLike, models.LikeTypeDislike), RatingModeExistingLike))
	assert.Equal(t, 0, ComputeRating(likesOf(models.LikeTypeDislike), RatingModeExistingLike))
}

func TestRecomputePostRating(t *testing.T) {
	db := setupTestDB(t)

	author := createTestUser(t, db, "author", models.RoleUser)
	voter := createTestUser(t, db, "voter", models.RoleUser)
	other := createTestUser(t, db, "other", models.RoleUser)
	post := createTestPost(t, db, author.ID, "rated post")

	createTestLike(t, db, voter.ID, &post.ID, nil, models.LikeTypeLike)
	createTestLike(t, db, other.ID, &post.ID, nil, models.LikeTypeLike)

	NewRatingService().RecomputePostRating(post.ID, RatingModeStandard)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 2, got.Rating)
}

func TestRecomputeUserRatingSumsPostsAndComments(t *testing.T) {
	db := setupTestDB(t)

	author := createTestUser(t, db, "author", models.RoleUser)
	voter := createTestUser(t, db, "voter", models.RoleUser)

	post := createTestPost(t, db, author.ID, "post one")
	comment := createTestComment(t, db, author.ID, post.ID)

	createTestLike(t, db, voter.ID, &post.ID, nil, models.LikeTypeLike)
	createTestLike(t, db, voter.ID, nil, &comment.ID, models.LikeTypeLike)

	NewRatingService().RecomputeUserRating(author.ID, RatingModeStandard)

	var got models.User
	require.NoError(t, db.First(&got, author.ID).Error)
	assert.Equal(t, 2, got.Rating)

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	assert.Equal(t, 1, gotPost.Rating)

	var gotComment models.Comment
	require.NoError(t, db.First(&gotComment, comment.ID).Error)
	assert.Equal(t, 1, gotComment.Rating)
}

func TestRecomputeUserRatingMissingUserIsSilent(t *testing.T) {
	setupTestDB(t)

	// must not panic or error out the caller
	NewRatingService().RecomputeUserRating(9999, RatingModeStandard)
}
