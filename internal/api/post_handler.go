package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/services"
	"github.com/usof-platform/usof-backend/internal/utils"
)

// PostHandler 结构体，封装帖子、收藏相关的 HTTP 请求处理逻辑
type PostHandler struct {
	postService   *services.PostService
	userService   *services.UserService
	ratingService *services.RatingService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		postService:   services.NewPostService(),
		userService:   services.NewUserService(),
		ratingService: services.NewRatingService(),
	}
}

// parseListQuery 解析帖子列表的查询参数
func parseListQuery(c *gin.Context) *models.PostListQuery {
	query := &models.PostListQuery{
		Sort: c.Query("sort"),
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		query.Page = page
	} else {
		query.Page = 1
	}

	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				query.Categories = append(query.Categories, uint(id))
			}
		}
	}

	if raw := c.Query("startDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			query.StartDate = &t
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			query.EndDate = &t
		}
	}

	if status := c.Query("status"); status == string(models.PostStatusActive) || status == string(models.PostStatusInactive) {
		query.Status = models.PostStatus(status)
	}

	return query
}

// ListPosts 获取帖子列表；先刷新本页帖子的评分再返回
func (h *PostHandler) ListPosts(c *gin.Context) {
	query := parseListQuery(c)

	posts, _, err := h.postService.ListPosts(query)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	// 读取会触发评分重算，之后重新取一次拿到新值
	for _, post := range posts {
		h.ratingService.RecomputePostRating(post.ID, services.RatingModeStandard)
	}
	posts, total, err := h.postService.ListPosts(query)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, posts[i].ToResponse())
	}

	utils.SuccessWithPagination(c, responses, total, query.Page, utils.DefaultPageSize)
}

// ListUserPosts 获取指定作者的帖子列表
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	authorID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	query := parseListQuery(c)

	posts, _, err := h.postService.ListUserPosts(uint(authorID), requester, query)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	for _, post := range posts {
		h.ratingService.RecomputePostRating(post.ID, services.RatingModeStandard)
	}
	posts, total, err := h.postService.ListUserPosts(uint(authorID), requester, query)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, posts[i].ToResponse())
	}

	utils.SuccessWithPagination(c, responses, total, query.Page, utils.DefaultPageSize)
}

// GetPost 获取单个帖子；先刷新评分再返回
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	h.ratingService.RecomputePostRating(uint(id), services.RatingModeStandard)

	post, err := h.postService.GetActivePost(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrActivePostNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, post.ToResponse())
}

// CreatePost 创建帖子
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(userID, &req)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Created(c, post.ToResponse())
}

// UpdatePost 编辑帖子
func (h *PostHandler) UpdatePost(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	post, err := h.postService.UpdatePost(uint(id), requester, &req)
	if err != nil {
		writePostError(c, err)
		return
	}

	utils.Success(c, post.ToResponse())
}

// DeletePost 删除帖子
func (h *PostHandler) DeletePost(c *gin.Context) {
	requester, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.DeletePost(uint(id), requester); err != nil {
		writePostError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Post deleted"})
}

// GetPostLikes 获取帖子的所有点赞
func (h *PostHandler) GetPostLikes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	likes, err := h.postService.GetLikesForPost(uint(id))
	if err != nil {
		writePostError(c, err)
		return
	}

	responses := make([]models.LikeResponse, 0, len(likes))
	for i := range likes {
		responses = append(responses, likes[i].ToResponse())
	}

	utils.Success(c, responses)
}

// LikePost 点赞或点踩帖子
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
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

	like, created, err := h.postService.LikePost(uint(id), userID, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateLikeType) {
			utils.BadRequest(c, err.Error())
			return
		}
		writePostError(c, err)
		return
	}

	if created {
		utils.Created(c, like.ToResponse())
		return
	}
	utils.Success(c, like.ToResponse())
}

// UnlikePost 取消帖子的点赞
func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.UnlikePost(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrLikeNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		writePostError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Like removed"})
}

// GetPostComments 获取帖子的评论列表；先刷新各评论的评分
func (h *PostHandler) GetPostComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	comments, err := h.postService.GetCommentsForPost(uint(id))
	if err != nil {
		writePostError(c, err)
		return
	}

	for _, comment := range comments {
		h.ratingService.RecomputeCommentRating(comment.ID, services.RatingModeStandard)
	}
	comments, err = h.postService.GetCommentsForPost(uint(id))
	if err != nil {
		writePostError(c, err)
		return
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse())
	}

	utils.Success(c, responses)
}

// CreatePostComment 为帖子添加评论
func (h *PostHandler) CreatePostComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	comment, err := h.postService.CreateComment(uint(id), userID, req.Content)
	if err != nil {
		writePostError(c, err)
		return
	}

	utils.Created(c, comment.ToResponse())
}

// GetPostCategories 获取帖子关联的分类
func (h *PostHandler) GetPostCategories(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	categories, err := h.postService.GetCategoriesForPost(uint(id))
	if err != nil {
		writePostError(c, err)
		return
	}

	utils.Success(c, categories)
}

// GetFavorites 获取当前用户收藏的帖子
func (h *PostHandler) GetFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favorites, err := h.postService.GetFavorites(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	responses := make([]models.PostResponse, 0, len(favorites))
	for i := range favorites {
		if favorites[i].Post != nil {
			responses = append(responses, favorites[i].Post.ToResponse())
		}
	}

	utils.Success(c, responses)
}

// AddFavorite 收藏帖子
func (h *PostHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	if _, err := h.postService.AddFavorite(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrAlreadyFavorite) {
			utils.BadRequest(c, err.Error())
			return
		}
		writePostError(c, err)
		return
	}

	utils.Created(c, gin.H{"message": "Post added to favorites"})
}

// RemoveFavorite 取消收藏
func (h *PostHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.RemoveFavorite(uint(id), userID); err != nil {
		if errors.Is(err, services.ErrFavoriteNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Post removed from favorites"})
}

// writePostError 将帖子相关的领域错误映射为 HTTP 状态码
func writePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrActivePostNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPostLocked):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		utils.Forbidden(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
