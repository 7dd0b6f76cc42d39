package model

import "time"

// AuthUser Supabase Authのユーザーを管理画面向けに整形したモデル
type AuthUser struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"` // "admin" または "user"
	CreatedAt      time.Time  `json:"createdAt"`
	LastSignIn     *time.Time `json:"lastSignIn,omitempty"`
	EmailConfirmed bool       `json:"emailConfirmed"`
}

// IsAdmin 管理者ロールを持つかチェック
func (u *AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest ユーザー作成リクエストのボディ
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // 未指定の場合は"user"
}

// UpdateUserRequest ユーザー更新リクエストのボディ（全フィールド任意）
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
}
