package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/logging"
	"github.com/usof-platform/usof-backend/internal/models"
)

// RatingMode selects the weighting regime for a recomputation. A brand-new
// like is folded with weight 1; a change to a pre-existing like is folded
// with weight 2. The asymmetry is a fixed contract, not a bug to repair.
type RatingMode int

const (
	RatingModeStandard RatingMode = iota
	RatingModeExistingLike
)

func (m RatingMode) weight() int {
	if m == RatingModeExistingLike {
		return 2
	}
	return 1
}

// ComputeRating folds a like set into a rating total. A dislike only
// decrements while the running total is positive, so the result depends on
// the iteration order of the slice. Callers must not sort or dedupe the
// input: downstream consumers rely on this exact fold.
func ComputeRating(likes []models.Like, mode RatingMode) int {
	rating := 0
	weight := mode.weight()

	for _, like := range likes {
		switch like.Type {
		case models.LikeTypeLike:
			rating += weight
		case models.LikeTypeDislike:
			if rating > 0 {
				rating -= weight
			}
		}
	}

	return rating
}

// RatingService recomputes the derived rating of posts, comments and users
// from their current like sets. All of its methods are fire-and-forget:
// persistence failures are logged and swallowed so that a rating refresh
// can never fail the request that triggered it.
type RatingService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRatingService() *RatingService {
	return &RatingService{
		db:  database.GetDB(),
		log: logging.GetLogger(),
	}
}

// RecomputePostRating refreshes a single post's rating from its likes.
func (s *RatingService) RecomputePostRating(postID uint, mode RatingMode) {
	var post models.Post
	if err := s.db.Preload("Likes").First(&post, postID).Error; err != nil {
		s.log.Warn("failed to load post for rating recompute",
			zap.Uint("post_id", postID), zap.Error(err))
		return
	}

	rating := ComputeRating(post.Likes, mode)
	if err := s.db.Model(&post).Update("rating", rating).Error; err != nil {
		s.log.Warn("failed to persist post rating",
			zap.Uint("post_id", postID), zap.Error(err))
	}
}

// RecomputeCommentRating refreshes a single comment's rating from its likes.
func (s *RatingService) RecomputeCommentRating(commentID uint, mode RatingMode) {
	var comment models.Comment
	if err := s.db.Preload("Likes").First(&comment, commentID).Error; err != nil {
		s.log.Warn("failed to load comment for rating recompute",
			zap.Uint("comment_id", commentID), zap.Error(err))
		return
	}

	rating := ComputeRating(comment.Likes, mode)
	if err := s.db.Model(&comment).Update("rating", rating).Error; err != nil {
		s.log.Warn("failed to persist comment rating",
			zap.Uint("comment_id", commentID), zap.Error(err))
	}
}

// RecomputeUserRating recomputes every post and comment rating of the user
// and persists their sum as the user's aggregate rating.
func (s *RatingService) RecomputeUserRating(userID uint, mode RatingMode) {
	var user models.User
	if err := s.db.
		Preload("Posts.Likes").
		Preload("Comments.Likes").
		First(&user, userID).Error; err != nil {
		s.log.Warn("failed to load user for rating recompute",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	total := 0

	for i := range user.Posts {
		post := &user.Posts[i]
		rating := ComputeRating(post.Likes, mode)
		if err := s.db.Model(post).Update("rating", rating).Error; err != nil {
			s.log.Warn("failed to persist post rating",
				zap.Uint("post_id", post.ID), zap.Error(err))
		}
		total += rating
	}

	for i := range user.Comments {
		comment := &user.Comments[i]
		rating := ComputeRating(comment.Likes, mode)
		if err := s.db.Model(comment).Update("rating", rating).Error; err != nil {
			s.log.Warn("failed to persist comment rating",
				zap.Uint("comment_id", comment.ID), zap.Error(err))
		}
		total += rating
	}

	if err := s.db.Model(&user).Update("rating", total).Error; err != nil {
		s.log.Warn("failed to persist user rating",
			zap.Uint("user_id", userID), zap.Error(err))
	}
}
