package models

import (
	"time"
)

// Category 对应数据库中的 'categories' 表
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// GORM 关系定义
	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_categories;constraint:OnDelete:CASCADE"`
}

// CategoryRequest 创建/更新分类的请求体
type CategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (Category) TableName() string {
	return "categories"
}
