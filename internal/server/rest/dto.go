package rest

import (
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

type registerRequest struct {
	UserName string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginRequest has no binding tags: missing credentials are rejected by the
// auth service as invalid credentials.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest has no binding tags: a missing token is reported by the
// auth service with its own status.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	Message      string             `json:"message"`
	User         models.UserSummary `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

type createUserRequest struct {
	UserName string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	UserName *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type userResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}
