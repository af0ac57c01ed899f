package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
)

// CommentService 结构体，用于封装与评论相关的数据库操作和业务逻辑
type CommentService struct {
	db      *gorm.DB
	ratings *RatingService
}

// NewCommentService 创建并返回一个新的 CommentService 实例
func NewCommentService() *CommentService {
	return &CommentService{
		db:      database.GetDB(),
		ratings: NewRatingService(),
	}
}

// GetCommentByID returns a single comment.
func (s *CommentService) GetCommentByID(id uint) (*models.Comment, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetLikesForComment returns the comment's likes with their authors.
func (s *CommentService) GetLikesForComment(commentID uint) ([]models.Like, error) {
	if _, err := s.GetCommentByID(commentID); err != nil {
		return nil, err
	}

	var likes []models.Like
	if err := s.db.Preload("Author").Where("comment_id = ?", commentID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// LikeComment records or updates the requester's like on a comment.
// Same contract as PostService.LikePost except comments carry no like
// counter, only a rating.
func (s *CommentService) LikeComment(commentID, userID uint, likeType models.LikeType) (*models.Like, bool, error) {
	comment, err := s.GetCommentByID(commentID)
	if err != nil {
		return nil, false, err
	}

	var existing models.Like
	err = s.db.Where("author_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
	if err == nil {
		if existing.Type == likeType {
			return nil, false, ErrDuplicateLikeType
		}

		existing.Type = likeType
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, false, err
		}

		s.ratings.RecomputeCommentRating(commentID, RatingModeExistingLike)
		s.ratings.RecomputeUserRating(comment.AuthorID, RatingModeExistingLike)
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	like := &models.Like{
		AuthorID:  userID,
		CommentID: &commentID,
		Type:      likeType,
	}
	if err := s.db.Create(like).Error; err != nil {
		return nil, false, err
	}

	s.ratings.RecomputeUserRating(comment.AuthorID, RatingModeStandard)
	s.ratings.RecomputeCommentRating(commentID, RatingModeStandard)
	return like, true, nil
}

// UnlikeComment removes the requester's like from a comment.
func (s *CommentService) UnlikeComment(commentID, userID uint) error {
	comment, err := s.GetCommentByID(commentID)
	if err != nil {
		return err
	}

	var like models.Like
	if err := s.db.Where("author_id = ? AND comment_id = ?", userID, commentID).First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return err
	}

	if err := s.db.Delete(&like).Error; err != nil {
		return err
	}

	s.ratings.RecomputeUserRating(comment.AuthorID, RatingModeStandard)
	s.ratings.RecomputeCommentRating(commentID, RatingModeStandard)
	return nil
}

// UpdateComment edits a comment's content. Author only; a locked parent
// post freezes its comments too.
func (s *CommentService) UpdateComment(commentID uint, requester *models.User, req *models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.GetCommentByID(commentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkParentUnlocked(comment.PostID); err != nil {
		return nil, err
	}

	if comment.AuthorID != requester.ID {
		return nil, ErrPermissionDenied
	}

	comment.Content = req.Content
	if err := s.db.Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its likes. Author or admin only;
// a locked parent post freezes its comments too.
func (s *CommentService) DeleteComment(commentID uint, requester *models.User) error {
	comment, err := s.GetCommentByID(commentID)
	if err != nil {
		return err
	}

	if err := s.checkParentUnlocked(comment.PostID); err != nil {
		return err
	}

	if comment.AuthorID != requester.ID && !requester.IsAdmin() {
		return ErrPermissionDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(comment).Error
	})
}

func (s *CommentService) checkParentUnlocked(postID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.Locked {
		return ErrPostLocked
	}
	return nil
}
