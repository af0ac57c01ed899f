package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// LikeType 点赞类型枚举
type LikeType string

const (
	LikeTypeLike    LikeType = "like"
	LikeTypeDislike LikeType = "dislike"
)

var ErrLikeTargetAmbiguous = errors.New("like must reference exactly one of post or comment")

// Like 对应数据库中的 'likes' 表
// 每条记录只能指向一个帖子或一条评论，二者取其一
type Like struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	AuthorID  uint     `json:"author_id" gorm:"not null;index"`
	PostID    *uint    `json:"post_id" gorm:"index"`
	CommentID *uint    `json:"comment_id" gorm:"index"`
	Type      LikeType `json:"type" gorm:"type:varchar(10);not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// GORM 关系定义
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}

// BeforeSave enforces the post/comment exclusivity the schema itself
// cannot express: exactly one target must be set.
func (l *Like) BeforeSave(tx *gorm.DB) error {
	if (l.PostID == nil) == (l.CommentID == nil) {
		return ErrLikeTargetAmbiguous
	}
	return nil
}

func (l *LikeType) IsValid() bool {
	return *l == LikeTypeLike || *l == LikeTypeDislike
}

// LikeRequest 点赞请求体
type LikeRequest struct {
	Type LikeType `json:"type" binding:"required"`
}

// LikeResponse 用于向前端返回点赞信息
type LikeResponse struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	PostID    *uint     `json:"post_id,omitempty"`
	CommentID *uint     `json:"comment_id,omitempty"`
	Type      LikeType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) ToResponse() LikeResponse {
	return LikeResponse{
		ID:        l.ID,
		AuthorID:  l.AuthorID,
		PostID:    l.PostID,
		CommentID: l.CommentID,
		Type:      l.Type,
		CreatedAt: l.CreatedAt,
	}
}

func (Like) TableName() string {
	return "likes"
}
