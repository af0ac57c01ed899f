package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/utils"
)

// Action is a named operation key used to look up allowed roles.
type Action string

const (
	ActionGetUsers             Action = "getUsers"
	ActionGetUserPosts         Action = "getUserPosts"
	ActionCreateUser           Action = "createUser"
	ActionUploadAvatar         Action = "uploadAvatar"
	ActionUpdateProfile        Action = "updateProfile"
	ActionDeleteUser           Action = "deleteUser"
	ActionCreateComment        Action = "createComment"
	ActionGetLikesForPost      Action = "getLikesForPost"
	ActionCreatePost           Action = "createPost"
	ActionLikePost             Action = "likePost"
	ActionGetFavorites         Action = "getFavorites"
	ActionAddFavorite          Action = "addFavorite"
	ActionUpdatePost           Action = "updatePost"
	ActionDeletePost           Action = "deletePost"
	ActionDeleteLike           Action = "deleteLike"
	ActionRemoveFavorite       Action = "removeFavorite"
	ActionCreateCategory       Action = "createCategory"
	ActionUpdateCategory       Action = "updateCategory"
	ActionDeleteCategory       Action = "deleteCategory"
	ActionLikeComment          Action = "likeComment"
	ActionUpdateComment        Action = "updateComment"
	ActionDeleteComment        Action = "deleteComment"
	ActionDeleteLikeForComment Action = "deleteLikeForComment"
)

// rolePermissions maps every action to the set of roles allowed to invoke
// it. Built once at package load, queried read-only thereafter. An action
// missing from the table is denied for every role.
var rolePermissions = map[Action][]models.UserRole{
	ActionGetUsers:             {models.RoleAdmin, models.RoleUser},
	ActionGetUserPosts:         {models.RoleAdmin, models.RoleUser},
	ActionCreateUser:           {models.RoleAdmin},
	ActionUploadAvatar:         {models.RoleAdmin, models.RoleUser},
	ActionUpdateProfile:        {models.RoleAdmin, models.RoleUser},
	ActionDeleteUser:           {models.RoleAdmin, models.RoleUser},
	ActionCreateComment:        {models.RoleAdmin, models.RoleUser},
	ActionGetLikesForPost:      {models.RoleAdmin, models.RoleUser},
	ActionCreatePost:           {models.RoleAdmin, models.RoleUser},
	ActionLikePost:             {models.RoleAdmin, models.RoleUser},
	ActionGetFavorites:         {models.RoleAdmin, models.RoleUser},
	ActionAddFavorite:          {models.RoleAdmin, models.RoleUser},
	ActionUpdatePost:           {models.RoleAdmin, models.RoleUser},
	ActionDeletePost:           {models.RoleAdmin, models.RoleUser},
	ActionDeleteLike:           {models.RoleAdmin, models.RoleUser},
	ActionRemoveFavorite:       {models.RoleAdmin, models.RoleUser},
	ActionCreateCategory:       {models.RoleAdmin},
	ActionUpdateCategory:       {models.RoleAdmin},
	ActionDeleteCategory:       {models.RoleAdmin},
	ActionLikeComment:          {models.RoleAdmin, models.RoleUser},
	ActionUpdateComment:        {models.RoleAdmin, models.RoleUser},
	ActionDeleteComment:        {models.RoleAdmin, models.RoleUser},
	ActionDeleteLikeForComment: {models.RoleAdmin, models.RoleUser},
}

// IsActionAllowed reports whether the role may invoke the action.
func IsActionAllowed(action Action, role models.UserRole) bool {
	for _, allowed := range rolePermissions[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// CheckPermission gates a route by the static role table. The principal's
// role is read from the database rather than the token so that a role
// change takes effect before the token expires.
func CheckPermission(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadPrincipal(c)
		if !ok {
			return
		}

		if !IsActionAllowed(action, user.Role) {
			utils.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOwnerOrAdmin permits the request only when the :user_id route
// parameter names the principal themselves, or the principal is an admin.
func RequireOwnerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadPrincipal(c)
		if !ok {
			return
		}

		targetID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			utils.BadRequest(c, "Invalid user ID")
			c.Abort()
			return
		}

		if user.IsAdmin() || user.ID == uint(targetID) {
			c.Next()
			return
		}

		utils.Forbidden(c, "Access denied")
		c.Abort()
	}
}

// loadPrincipal resolves the authenticated user's row. A stale or forged
// identity (token for a user that no longer exists) yields not-found,
// distinguished from a permission denial.
func loadPrincipal(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		c.Abort()
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID.(uint)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Error checking permissions")
		}
		c.Abort()
		return nil, false
	}

	return &user, true
}
