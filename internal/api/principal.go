package api

import (
	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/services"
	"github.com/usof-platform/usof-backend/internal/utils"
)

// currentUserID pulls the authenticated user's ID out of the gin context.
// Writes the error response itself when the request is not authenticated.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return 0, false
	}

	id, ok := userID.(uint)
	if !ok {
		utils.InternalServerError(c, "Failed to get user ID from context")
		return 0, false
	}
	return id, true
}

// currentUser resolves the authenticated user's row. Permission decisions
// read the stored role, not the token's, so role changes apply immediately.
func currentUser(c *gin.Context, userService *services.UserService) (*models.User, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	user, err := userService.GetUserByID(id)
	if err != nil {
		utils.NotFound(c, "User not found")
		return nil, false
	}
	return user, true
}
