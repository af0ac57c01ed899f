package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/logging"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

// postLockAge is how old a post must be before the sweeper freezes it.
const postLockAge = 30 * 24 * time.Hour

type PostService struct {
	db      *gorm.DB
	ratings *RatingService
}

func NewPostService() *PostService {
	return &PostService{
		db:      database.GetDB(),
		ratings: NewRatingService(),
	}
}

// GetPostByID returns a post regardless of status.
func (s *PostService) GetPostByID(id uint) (*models.Post, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetActivePost returns a single active post with its categories.
func (s *PostService) GetActivePost(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Categories").
		Where("id = ? AND status = ?", id, models.PostStatusActive).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivePostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts returns a page of posts matching the query together with the
// total match count. Only active posts are listed unless the query names
// an explicit status.
func (s *PostService) ListPosts(query *models.PostListQuery) ([]models.Post, int64, error) {
	db := s.db.Model(&models.Post{})

	status := query.Status
	if status == "" {
		status = models.PostStatusActive
	}
	db = db.Where("posts.status = ?", status)

	db = applyPostFilters(db, query)

	return fetchPostPage(db, query, len(query.Categories) > 0)
}

// ListUserPosts returns a page of one author's posts. Requesters other than
// the author see only active posts unless they are an admin.
func (s *PostService) ListUserPosts(authorID uint, requester *models.User, query *models.PostListQuery) ([]models.Post, int64, error) {
	db := s.db.Model(&models.Post{}).
		Where("posts.author_id = ?", authorID)

	if requester.ID != authorID && !requester.IsAdmin() {
		db = db.Where("posts.status = ?", models.PostStatusActive)
	} else if query.Status != "" {
		db = db.Where("posts.status = ?", query.Status)
	}

	db = applyPostFilters(db, query)

	return fetchPostPage(db, query, len(query.Categories) > 0)
}

// applyPostFilters adds the shared date-range and category constraints.
func applyPostFilters(db *gorm.DB, query *models.PostListQuery) *gorm.DB {
	if query.StartDate != nil {
		db = db.Where("posts.created_at >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("posts.created_at <= ?", *query.EndDate)
	}

	if len(query.Categories) > 0 {
		db = db.Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id IN ?", query.Categories)
	}

	return db
}

// fetchPostPage counts the full match set, then loads one page of it.
func fetchPostPage(db *gorm.DB, query *models.PostListQuery, joined bool) ([]models.Post, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := utils.Pagination(query.Page)

	page := db.Session(&gorm.Session{}).Preload("Categories")
	if joined {
		page = page.Distinct("posts.*")
	}

	if query.Sort == "date" {
		page = page.Order("posts.created_at DESC")
	} else {
		page = page.Order("posts.likes_count DESC")
	}

	var posts []models.Post
	if err := page.Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CreatePost creates an active post and attaches the named categories.
func (s *PostService) CreatePost(authorID uint, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Status:   models.PostStatusActive,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}

	if len(req.Categories) > 0 {
		var categories []models.Category
		if err := s.db.Where("id IN ?", req.Categories).Find(&categories).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(post).Association("Categories").Append(&categories); err != nil {
			return nil, err
		}
		post.Categories = categories
	}

	return post, nil
}

// UpdatePost applies an edit. The author may change title, content and
// categories and may deactivate the post; an admin who is not the author
// may only flip the status. Locked posts reject everything.
func (s *PostService) UpdatePost(postID uint, requester *models.User, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	if post.Locked {
		return nil, ErrPostLocked
	}

	switch {
	case post.AuthorID == requester.ID:
		if req.Title != "" {
			post.Title = req.Title
		}
		if req.Content != "" {
			post.Content = req.Content
		}
		if req.Categories != nil {
			var categories []models.Category
			if err := s.db.Where("id IN ?", req.Categories).Find(&categories).Error; err != nil {
				return nil, err
			}
			if err := s.db.Model(post).Association("Categories").Replace(&categories); err != nil {
				return nil, err
			}
		}
		// authors can hide their own post but not force it back to active
		if req.Status == models.PostStatusInactive {
			post.Status = req.Status
		}
	case requester.IsAdmin() && (req.Status == models.PostStatusActive || req.Status == models.PostStatusInactive):
		post.Status = req.Status
	default:
		return nil, ErrPermissionDenied
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and everything attached to it. Author or
// admin only; locked posts cannot be deleted.
func (s *PostService) DeletePost(postID uint, requester *models.User) error {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return err
	}

	if post.Locked {
		return ErrPostLocked
	}

	if post.AuthorID != requester.ID && !requester.IsAdmin() {
		return ErrPermissionDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deletePostCascade(tx, postID)
	})
}

// deletePostCascade removes a post together with its comments, likes,
// favorites and category links inside the caller's transaction.
func deletePostCascade(tx *gorm.DB, postID uint) error {
	var commentIDs []uint
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", postID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Post{}, postID).Error
}

// GetLikesForPost returns the post's likes with their authors.
func (s *PostService) GetLikesForPost(postID uint) ([]models.Like, error) {
	if _, err := s.GetPostByID(postID); err != nil {
		return nil, err
	}

	var likes []models.Like
	if err := s.db.Preload("Author").Where("post_id = ?", postID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// LikePost records or updates the requester's like on a post. A repeated
// like of the same type is rejected; switching type updates the existing
// record in place. Returns the like and whether it was newly created.
//
// Note that likes are accepted on locked posts: the lock freezes content,
// not opinions.
func (s *PostService) LikePost(postID, userID uint, likeType models.LikeType) (*models.Like, bool, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, false, err
	}

	var existing models.Like
	err = s.db.Where("author_id = ? AND post_id = ?", userID, postID).First(&existing).Error
	if err == nil {
		if existing.Type == likeType {
			return nil, false, ErrDuplicateLikeType
		}

		existing.Type = likeType
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, false, err
		}

		delta := 1
		if likeType == models.LikeTypeDislike {
			delta = -1
		}
		if err := s.db.Model(post).Update("likes_count", gorm.Expr("likes_count + ?", delta)).Error; err != nil {
			return nil, false, err
		}

		s.ratings.RecomputePostRating(postID, RatingModeExistingLike)
		s.ratings.RecomputeUserRating(post.AuthorID, RatingModeExistingLike)
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	like := &models.Like{
		AuthorID: userID,
		PostID:   &postID,
		Type:     likeType,
	}
	if err := s.db.Create(like).Error; err != nil {
		return nil, false, err
	}

	s.ratings.RecomputeUserRating(post.AuthorID, RatingModeStandard)

	if err := s.db.Model(post).Update("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
		return nil, false, err
	}

	s.ratings.RecomputePostRating(postID, RatingModeStandard)
	return like, true, nil
}

// UnlikePost removes the requester's like from a post.
func (s *PostService) UnlikePost(postID, userID uint) error {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return err
	}

	var like models.Like
	if err := s.db.Where("author_id = ? AND post_id = ?", userID, postID).First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return err
	}

	if err := s.db.Delete(&like).Error; err != nil {
		return err
	}

	s.ratings.RecomputeUserRating(post.AuthorID, RatingModeStandard)

	if err := s.db.Model(post).Update("likes_count", gorm.Expr("likes_count - ?", 1)).Error; err != nil {
		return err
	}

	s.ratings.RecomputePostRating(postID, RatingModeStandard)
	return nil
}

// GetCommentsForPost returns all comments of a post.
func (s *PostService) GetCommentsForPost(postID uint) ([]models.Comment, error) {
	if _, err := s.GetPostByID(postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment adds a comment to an unlocked post.
func (s *PostService) CreateComment(postID, authorID uint, content string) (*models.Comment, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	if post.Locked {
		return nil, ErrPostLocked
	}

	comment := &models.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Content:  content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetCategoriesForPost returns the categories attached to a post.
func (s *PostService) GetCategoriesForPost(postID uint) ([]models.Category, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Model(post).Association("Categories").Find(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AddFavorite bookmarks a post for the user.
func (s *PostService) AddFavorite(postID, userID uint) (*models.Favorite, error) {
	if _, err := s.GetPostByID(postID); err != nil {
		return nil, err
	}

	var existing models.Favorite
	if err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyFavorite
	}

	favorite := &models.Favorite{
		UserID: userID,
		PostID: postID,
	}
	if err := s.db.Create(favorite).Error; err != nil {
		return nil, err
	}
	return favorite, nil
}

// RemoveFavorite drops the user's bookmark of a post.
func (s *PostService) RemoveFavorite(postID, userID uint) error {
	result := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// GetFavorites returns the user's bookmarks with their posts.
func (s *PostService) GetFavorites(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Preload("Post").Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// LockAgedPosts freezes every unlocked post older than the lock age in a
// single bulk update and returns how many rows it touched. Re-running with
// no newly aged posts is a no-op; nothing is ever unlocked.
func (s *PostService) LockAgedPosts() (int64, error) {
	cutoff := time.Now().Add(-postLockAge)

	result := s.db.Model(&models.Post{}).
		Where("created_at < ? AND locked = ?", cutoff, false).
		Update("locked", true)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logging.GetLogger().Info("locked aged posts", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}
