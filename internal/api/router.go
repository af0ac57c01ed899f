package api

import (
	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/middleware"
)

func SetupRoutes() *gin.Engine {
	r := gin.Default()

	// add cors middleware
	r.Use(middleware.CORSMiddleware())

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "usof backend is running",
		})
	})

	// serve uploaded avatars
	r.Static("/uploads", "./uploads")

	// initialize handler
	authHandler := NewAuthHandler()
	userHandler := NewUserHandler()
	postHandler := NewPostHandler()
	commentHandler := NewCommentHandler()
	categoryHandler := NewCategoryHandler()

	api := r.Group("/api")
	{
		// public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
			auth.POST("/password-reset", middleware.AuthMiddleware(), authHandler.SendPasswordReset)
			auth.POST("/password-reset/:token", middleware.AuthMiddleware(), authHandler.ConfirmPasswordReset)
		}

		// user routes
		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware())
		{
			users.GET("", middleware.CheckPermission(middleware.ActionGetUsers), userHandler.GetUsers)
			users.GET("/:user_id", middleware.CheckPermission(middleware.ActionGetUsers), userHandler.GetUser)
			users.GET("/:user_id/posts", middleware.CheckPermission(middleware.ActionGetUserPosts), postHandler.ListUserPosts)
			users.POST("", middleware.CheckPermission(middleware.ActionCreateUser), userHandler.CreateUser)
			users.PATCH("/avatar", middleware.CheckPermission(middleware.ActionUploadAvatar), userHandler.UploadAvatar)
			users.PATCH("/:user_id", middleware.CheckPermission(middleware.ActionUpdateProfile), userHandler.UpdateProfile)
			users.DELETE("/:user_id",
				middleware.CheckPermission(middleware.ActionDeleteUser),
				middleware.RequireOwnerOrAdmin(),
				userHandler.DeleteUser)
		}

		// post routes
		posts := api.Group("/posts")
		{
			// 公开路由
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:post_id", postHandler.GetPost)
			posts.GET("/:post_id/comments", postHandler.GetPostComments)
			posts.GET("/:post_id/categories", postHandler.GetPostCategories)

			// 需要身份验证的路由
			authPosts := posts.Group("")
			authPosts.Use(middleware.AuthMiddleware())
			{
				authPosts.GET("/:post_id/like", middleware.CheckPermission(middleware.ActionGetLikesForPost), postHandler.GetPostLikes)
				authPosts.POST("", middleware.CheckPermission(middleware.ActionCreatePost), postHandler.CreatePost)
				authPosts.POST("/:post_id/comments", middleware.CheckPermission(middleware.ActionCreateComment), postHandler.CreatePostComment)
				authPosts.POST("/:post_id/like", middleware.CheckPermission(middleware.ActionLikePost), postHandler.LikePost)
				authPosts.PATCH("/:post_id", middleware.CheckPermission(middleware.ActionUpdatePost), postHandler.UpdatePost)
				authPosts.DELETE("/:post_id", middleware.CheckPermission(middleware.ActionDeletePost), postHandler.DeletePost)
				authPosts.DELETE("/:post_id/like", middleware.CheckPermission(middleware.ActionDeleteLike), postHandler.UnlikePost)
			}
		}

		// favorite routes
		favorites := api.Group("/favorites")
		favorites.Use(middleware.AuthMiddleware())
		{
			favorites.GET("", middleware.CheckPermission(middleware.ActionGetFavorites), postHandler.GetFavorites)
			favorites.POST("/:post_id", middleware.CheckPermission(middleware.ActionAddFavorite), postHandler.AddFavorite)
			favorites.DELETE("/:post_id", middleware.CheckPermission(middleware.ActionRemoveFavorite), postHandler.RemoveFavorite)
		}

		// category routes
		categories := api.Group("/categories")
		{
			// 公开路由
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:category_id", categoryHandler.GetCategory)
			categories.GET("/:category_id/posts", categoryHandler.GetCategoryPosts)

			// 需要身份验证的路由
			authCategories := categories.Group("")
			authCategories.Use(middleware.AuthMiddleware())
			{
				authCategories.POST("", middleware.CheckPermission(middleware.ActionCreateCategory), categoryHandler.CreateCategory)
				authCategories.PATCH("/:category_id", middleware.CheckPermission(middleware.ActionUpdateCategory), categoryHandler.UpdateCategory)
				authCategories.DELETE("/:category_id", middleware.CheckPermission(middleware.ActionDeleteCategory), categoryHandler.DeleteCategory)
			}
		}

		// comment routes
		comments := api.Group("/comments")
		{
			// 公开路由
			comments.GET("/:comment_id", commentHandler.GetComment)
			comments.GET("/:comment_id/like", commentHandler.GetCommentLikes)

			// 需要身份验证的路由
			authComments := comments.Group("")
			authComments.Use(middleware.AuthMiddleware())
			{
				authComments.POST("/:comment_id/like", middleware.CheckPermission(middleware.ActionLikeComment), commentHandler.LikeComment)
				authComments.PATCH("/:comment_id", middleware.CheckPermission(middleware.ActionUpdateComment), commentHandler.UpdateComment)
				authComments.DELETE("/:comment_id", middleware.CheckPermission(middleware.ActionDeleteComment), commentHandler.DeleteComment)
				authComments.DELETE("/:comment_id/like", middleware.CheckPermission(middleware.ActionDeleteLikeForComment), commentHandler.UnlikeComment)
			}
		}
	}

	return r
}
