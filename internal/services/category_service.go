package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService() *CategoryService {
	return &CategoryService{
		db: database.GetDB(),
	}
}

// GetCategoryByID returns a single category.
func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetAllCategories returns every category.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	if s.db == nil {
		return nil, errors.New("database connection not initialized")
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a category. Admin-only operation, enforced by the
// route guard.
func (s *CategoryService) CreateCategory(req *models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory edits a category's title and description.
func (s *CategoryService) UpdateCategory(id uint, req *models.CategoryRequest) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		category.Title = req.Title
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its post links. Posts themselves
// are untouched.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

// GetPostsByCategory returns a page of active posts carrying the category,
// together with the total match count.
func (s *CategoryService) GetPostsByCategory(id uint, page int) ([]models.Post, int64, error) {
	if _, err := s.GetCategoryByID(id); err != nil {
		return nil, 0, err
	}

	db := s.db.Model(&models.Post{}).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id = ? AND posts.status = ?", id, models.PostStatusActive)

	var total int64
	if err := db.Session(&gorm.Session{}).Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := utils.Pagination(page)

	var posts []models.Post
	err := db.Session(&gorm.Session{}).Preload("Categories").
		Order("posts.likes_count DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
