package api

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/services"
	"github.com/usof-platform/usof-backend/internal/utils"
)

const avatarUploadDir = "uploads/avatars"

type UserHandler struct {
	userService   *services.UserService
	ratingService *services.RatingService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		userService:   services.NewUserService(),
		ratingService: services.NewRatingService(),
	}
}

// GetUsers 获取所有用户；返回前先逐个重算评分
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	// 读取会触发评分重算，之后重新取一次拿到新值
	for _, user := range users {
		h.ratingService.RecomputeUserRating(user.ID, services.RatingModeStandard)
	}
	users, err = h.userService.GetAllUsers()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	utils.Success(c, responses)
}

// GetUser 获取单个用户；返回前先重算其评分，保证读取到的是最新值
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	h.ratingService.RecomputeUserRating(uint(id), services.RatingModeStandard)

	user, err := h.userService.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, user.ToResponse())
}

// CreateUser 管理员直接创建账号
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, user.ToResponse())
}

// UploadAvatar 上传当前用户头像
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "No avatar file provided")
		return
	}

	filename := fmt.Sprintf("%d%s", userID, filepath.Ext(file.Filename))
	dst := filepath.Join(avatarUploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.InternalServerError(c, "Failed to save avatar")
		return
	}

	user, err := h.userService.UpdateAvatar(userID, "/"+dst)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, user.ToResponse())
}

// UpdateProfile 更新指定用户的资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	targetID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(requester, uint(targetID), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFound(c, err.Error())
		case errors.Is(err, services.ErrPermissionDenied):
			utils.Forbidden(c, err.Error())
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Success(c, user.ToResponse())
}

// DeleteUser 删除用户及其全部内容
func (h *UserHandler) DeleteUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(uint(targetID)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "User deleted"})
}
