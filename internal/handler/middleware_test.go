package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"CareFinder-App/internal/domain/model"
)

// stubUsersRepo UsersRepositoryのテスト用スタブ
type stubUsersRepo struct {
	user *model.AuthUser
	err  error
}

func (s *stubUsersRepo) GetUserFromToken(ctx context.Context, accessToken string) (*model.AuthUser, error) {
	return s.user, s.err
}

func (s *stubUsersRepo) ListUsers(ctx context.Context) ([]model.AuthUser, error) {
	return nil, nil
}

func (s *stubUsersRepo) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.AuthUser, error) {
	return nil, nil
}

func (s *stubUsersRepo) UpdateUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.AuthUser, error) {
	return nil, nil
}

func (s *stubUsersRepo) DeleteUser(ctx context.Context, id string) error {
	return nil
}

func setupProtectedRouter(usersRepo *stubUsersRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(usersRepo), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Authorizationヘッダーなしは401", func(t *testing.T) {
		r := setupProtectedRouter(&stubUsersRepo{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bearer形式でないヘッダーは401", func(t *testing.T) {
		r := setupProtectedRouter(&stubUsersRepo{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("トークン検証失敗は401", func(t *testing.T) {
		r := setupProtectedRouter(&stubUsersRepo{err: errors.New("invalid token")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("一般ユーザーは403", func(t *testing.T) {
		r := setupProtectedRouter(&stubUsersRepo{
			user: &model.AuthUser{ID: "u1", Email: "user@example.com", Role: model.RoleUser},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理者は通過できる", func(t *testing.T) {
		r := setupProtectedRouter(&stubUsersRepo{
			user: &model.AuthUser{ID: "u1", Email: "admin@example.com", Role: model.RoleAdmin},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
