package models

import (
	"time"
)

// Comment 对应数据库中的 'comments' 表
type Comment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`
	PostID   uint   `json:"post_id" gorm:"not null;index"`
	Content  string `json:"content" gorm:"type:text;not null"`
	Rating   int    `json:"rating" gorm:"default:0"` // recomputed from likes

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// GORM 关系定义
	Author *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Post   *Post  `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
	Likes  []Like `json:"likes,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

// CommentResponse 用于向前端返回评论信息
type CommentResponse struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	PostID    uint      `json:"post_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

// CreateCommentRequest 创建评论的请求体
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// UpdateCommentRequest 更新评论的请求体
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
