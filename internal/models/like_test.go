package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLikeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Post{}, &Comment{}, &Like{}))
	return db
}

func TestLikeRequiresExactlyOneTarget(t *testing.T) {
	db := setupLikeTestDB(t)

	user := &User{Login: "voter", Email: "voter@example.com"}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)

	post := &Post{AuthorID: user.ID, Title: "post", Content: "body", Status: PostStatusActive}
	require.NoError(t, db.Create(post).Error)

	comment := &Comment{AuthorID: user.ID, PostID: post.ID, Content: "comment"}
	require.NoError(t, db.Create(comment).Error)

	// neither target set
	err := db.Create(&Like{AuthorID: user.ID, Type: LikeTypeLike}).Error
	assert.ErrorIs(t, err, ErrLikeTargetAmbiguous)

	// both targets set
	err = db.Create(&Like{AuthorID: user.ID, PostID: &post.ID, CommentID: &comment.ID, Type: LikeTypeLike}).Error
	assert.ErrorIs(t, err, ErrLikeTargetAmbiguous)

	// exactly one target passes
	like := &Like{AuthorID: user.ID, PostID: &post.ID, Type: LikeTypeLike}
	require.NoError(t, db.Create(like).Error)

	// the hook also guards updates: pointing an existing like at both
	// targets is rejected
	like.CommentID = &comment.ID
	assert.ErrorIs(t, db.Save(like).Error, ErrLikeTargetAmbiguous)
}
