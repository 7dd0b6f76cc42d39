package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// UsersHandler ユーザー管理APIのハンドラー（全エンドポイント要管理者権限）
type UsersHandler struct {
	usersRepo repository.UsersRepository
}

// NewUsersHandler 新しいUsersHandlerインスタンスを作成
func NewUsersHandler(usersRepo repository.UsersRepository) *UsersHandler {
	return &UsersHandler{
		usersRepo: usersRepo,
	}
}

// ListUsers GET /api/auth/users - ユーザー一覧を取得
func (h *UsersHandler) ListUsers(c *gin.Context) {
	users, err := h.usersRepo.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to list users: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser POST /api/auth/users - ユーザーを作成
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "email and password are required",
		})
		return
	}
	if req.Role != "" && req.Role != model.RoleAdmin && req.Role != model.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "role must be 'admin' or 'user'",
		})
		return
	}

	user, err := h.usersRepo.CreateUser(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// UpdateUser PUT /api/auth/users/:id - ユーザーを更新
func (h *UsersHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if req.Role != nil && *req.Role != model.RoleAdmin && *req.Role != model.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "role must be 'admin' or 'user'",
		})
		return
	}

	user, err := h.usersRepo.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser DELETE /api/auth/users/:id - ユーザーを削除
func (h *UsersHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	// 自分自身の削除は禁止する
	if currentUser := getCurrentUser(c); currentUser != nil && currentUser.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "cannot delete your own account",
		})
		return
	}

	if err := h.usersRepo.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
