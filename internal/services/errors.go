package services

import "errors"

// Domain errors shared across services; handlers map them onto HTTP
// status codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrActivePostNotFound = errors.New("active post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrFavoriteNotFound   = errors.New("favorite record not found")

	ErrPostLocked       = errors.New("this post is locked and cannot be modified")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")

	ErrDuplicateLikeType = errors.New("you have already given this type of like")
	ErrAlreadyFavorite   = errors.New("post is already in favorites")

	ErrLoginOrEmailTaken  = errors.New("login or email is already in use")
	ErrLoginTaken         = errors.New("login is already in use")
	ErrPasswordMismatch   = errors.New("password and confirmation do not match")
	ErrInvalidCredentials = errors.New("invalid login, password, or email not verified")
)
