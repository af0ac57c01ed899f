package models

// Favorite 对应数据库中的 'favorite_post' 表
// 纯粹的 (user, post) 关联，记录本身即为收藏信号
type Favorite struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID uint `json:"post_id" gorm:"primaryKey;autoIncrement:false"`

	// GORM 关系定义
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
}

func (Favorite) TableName() string {
	return "favorite_post"
}
