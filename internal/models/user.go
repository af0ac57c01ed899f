package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole 用户角色
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User 对应数据库中的 'users' 表
type User struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	Login          string   `json:"login" gorm:"type:varchar(30);not null;uniqueIndex"`
	Password       string   `json:"-" gorm:"type:varchar(255);not null"`
	FullName       string   `json:"full_name" gorm:"type:varchar(255)"`
	Email          string   `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	EmailVerified  bool     `json:"email_verified" gorm:"not null;default:false"`
	ProfilePicture string   `json:"profile_picture" gorm:"type:varchar(255)"`
	Rating         int      `json:"rating" gorm:"default:0"` // recomputed from post/comment ratings
	Role           UserRole `json:"role" gorm:"type:varchar(20);default:'user'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// GORM 关系定义
	Posts     []Post     `json:"posts,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments  []Comment  `json:"comments,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Favorites []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// SetPassword hashes and stores the plaintext password
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares the plaintext password against the stored hash
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse 用于向前端返回用户信息时，过滤掉敏感字段
type UserResponse struct {
	ID             uint     `json:"id"`
	Login          string   `json:"login"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profile_picture"`
	Rating         int      `json:"rating"`
	Role           UserRole `json:"role"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Login:          u.Login,
		FullName:       u.FullName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Rating:         u.Rating,
		Role:           u.Role,
	}
}

// RegisterRequest 用于用户注册的请求体
type RegisterRequest struct {
	Login                string `json:"login" binding:"required"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	Email                string `json:"email" binding:"required"`
	FullName             string `json:"full_name"`
}

// LoginRequest 用于用户登录的请求体
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest 管理员创建用户的请求体
type CreateUserRequest struct {
	Login                string   `json:"login" binding:"required"`
	Password             string   `json:"password" binding:"required"`
	PasswordConfirmation string   `json:"password_confirmation" binding:"required"`
	Email                string   `json:"email" binding:"required"`
	Role                 UserRole `json:"role" binding:"required"`
	FullName             string   `json:"full_name" binding:"required"`
}

// UpdateProfileRequest 更新用户资料的请求体
type UpdateProfileRequest struct {
	Login          string   `json:"login"`
	FullName       string   `json:"full_name"`
	ProfilePicture string   `json:"profile_picture"`
	Role           UserRole `json:"role"`
}

// ResetPasswordRequest 请求重置密码的请求体
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ConfirmPasswordRequest 确认新密码的请求体
type ConfirmPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (User) TableName() string {
	return "users"
}
