package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// currentUserKey 認証済みユーザーをginコンテキストに保存するキー
const currentUserKey = "currentUser"

// CORSMiddleware クロスオリジンリクエストを許可するミドルウェア
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// AuthMiddleware Authorizationヘッダーのトークンを検証して認証済みユーザーを設定する
func AuthMiddleware(usersRepo repository.UsersRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Bearer token is required",
			})
			return
		}

		user, err := usersRepo.GetUserFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin 管理者ロールを要求するミドルウェア（AuthMiddlewareの後に使う）
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getCurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authentication is required",
			})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Admin role is required",
			})
			return
		}

		c.Next()
	}
}

// getCurrentUser ginコンテキストから認証済みユーザーを取得する（未認証の場合はnil）
func getCurrentUser(c *gin.Context) *model.AuthUser {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.AuthUser)
	if !ok {
		return nil
	}
	return user
}
