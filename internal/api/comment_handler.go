package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/services"
	"github.com/usof-platform/usof-backend/internal/utils"
)

// CommentHandler 结构体，用于封装与评论相关的 HTTP 请求处理逻辑
type CommentHandler struct {
	commentService *services.CommentService
	userService    *services.UserService
	ratingService  *services.RatingService
}

// NewCommentHandler 创建并返回一个新的 CommentHandler 实例
func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		commentService: services.NewCommentService(),
		userService:    services.NewUserService(),
		ratingService:  services.NewRatingService(),
	}
}

// GetComment 获取单条评论；先刷新评分再返回
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	h.ratingService.RecomputeCommentRating(uint(id), services.RatingModeStandard)

	comment, err := h.commentService.GetCommentByID(uint(id))
	if err != nil {
		writeCommentError(c, err)
		return
	}

	utils.Success(c, comment.ToResponse())
}

// GetCommentLikes 获取评论的所有点赞
func (h *CommentHandler) GetCommentLikes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	likes, err := h.commentService.GetLikesForComment(uint(id))
	if err != nil {
		writeCommentError(c, err)
		return
	}

	responses := make([]models.LikeResponse, 0, len(likes))
	for i := range likes {
		responses = append(responses, likes[i].ToResponse())
	}

	utils.Success(c, responses)
}

// LikeComment 点赞或点踩评论
func (h *CommentHandler) LikeComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if !req.Type.IsValid() {
		utils.BadRequest(c, "Invalid like type. Valid types are: like, dislike")
		return
	}

	like, created, err := h.commentService.LikeComment(uint(id), userID, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateLikeType) {
			utils.BadRequest(c, err.Error())
			return
		}
		writeCommentError(c, err)
		return
	}

	if created {
		utils.Created(c, like.ToResponse())
		return
	}
	utils.Success(c, like.ToResponse())
}

// UnlikeComment 取消评论的点赞
func (h *CommentHandler) UnlikeComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.UnlikeComment(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrLikeNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		writeCommentError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Like removed"})
}

// UpdateComment 编辑评论内容
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(uint(id), requester, &req)
	if err != nil {
		writeCommentError(c, err)
		return
	}

	utils.Success(c, comment.ToResponse())
}

// DeleteComment 删除评论
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(uint(id), requester); err != nil {
		writeCommentError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Comment deleted"})
}

// writeCommentError 将评论相关的领域错误映射为 HTTP 状态码
func writeCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound), errors.Is(err, services.ErrPostNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPostLocked), errors.Is(err, services.ErrPermissionDenied):
		utils.Forbidden(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
