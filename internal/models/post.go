package models

import (
	"time"
)

// PostStatus 帖子状态枚举
type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusInactive PostStatus = "inactive"
)

// Post 对应数据库中的 'posts' 表
type Post struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	AuthorID   uint       `json:"author_id" gorm:"not null;index"`
	Title      string     `json:"title" gorm:"type:varchar(255);not null"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	Rating     int        `json:"rating" gorm:"default:0"`      // recomputed from likes
	LikesCount int        `json:"likes_count" gorm:"default:0"` // incrementally maintained, distinct from rating
	Locked     bool       `json:"locked" gorm:"default:false"`  // one-way: set by the lock sweeper, never cleared
	Status     PostStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// GORM 关系定义
	Author     *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Comments   []Comment  `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes      []Like     `json:"likes,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Favorites  []Favorite `json:"favorites,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:post_categories;constraint:OnDelete:CASCADE"`
}

// PostResponse 用于向前端返回帖子信息
type PostResponse struct {
	ID         uint       `json:"id"`
	AuthorID   uint       `json:"author_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Rating     int        `json:"rating"`
	LikesCount int        `json:"likes_count"`
	Locked     bool       `json:"locked"`
	Status     PostStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	Categories []string   `json:"categories,omitempty"`
}

func (p *Post) ToResponse() PostResponse {
	response := PostResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		Rating:     p.Rating,
		LikesCount: p.LikesCount,
		Locked:     p.Locked,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
	for _, category := range p.Categories {
		response.Categories = append(response.Categories, category.Title)
	}
	return response
}

// CreatePostRequest 创建帖子的请求体
type CreatePostRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Categories []uint `json:"categories"`
}

// UpdatePostRequest 更新帖子的请求体
type UpdatePostRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Categories []uint     `json:"categories"`
	Status     PostStatus `json:"status"`
}

// PostListQuery 帖子列表的查询参数
type PostListQuery struct {
	Page       int
	Sort       string // "likes" or "date"
	Categories []uint
	StartDate  *time.Time
	EndDate    *time.Time
	Status     PostStatus
}

func (Post) TableName() string {
	return "posts"
}
