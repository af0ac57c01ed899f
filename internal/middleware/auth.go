package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/cache"
	"github.com/usof-platform/usof-backend/internal/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		token := utils.StripBearerPrefix(authHeader)

		revoked, err := cache.Blacklist.Contains(token)
		if err != nil {
			utils.InternalServerError(c, "Failed to check token state")
			c.Abort()
			return
		}
		if revoked {
			utils.Forbidden(c, "Token is invalid, please log in again")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// 将用户信息存储到context中
		c.Set("user_id", claims.UserID)
		c.Set("login", claims.Login)
		c.Set("role", claims.Role)

		c.Next()
	}
}
