package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/services"
	"github.com/usof-platform/usof-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(),
	}
}

// user register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{
		"user":    user.ToResponse(),
		"message": "Registration successful, please confirm your email",
	})
}

// VerifyEmail 确认邮箱
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(token); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Email confirmed, you can now log in"})
}

// user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"user":  user.ToResponse(),
		"token": token,
	})
}

// Logout 注销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	token := utils.StripBearerPrefix(c.GetHeader("Authorization"))

	if err := h.authService.Logout(token); err != nil {
		utils.InternalServerError(c, "Failed to revoke token")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out"})
}

// SendPasswordReset 发送密码重置邮件
func (h *AuthHandler) SendPasswordReset(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if err := h.authService.SendPasswordReset(req.Email); err != nil {
		utils.InternalServerError(c, "Failed to send reset email")
		return
	}

	utils.Success(c, gin.H{"message": "Password reset link sent"})
}

// ConfirmPasswordReset 使用重置令牌设置新密码
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	token := c.Param("token")

	var req models.ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if err := h.authService.ConfirmPasswordReset(token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Password updated"})
}
