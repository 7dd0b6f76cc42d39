package repository

import (
	"context"

	"CareFinder-App/internal/domain/model"
)

// UsersRepository Supabase Authをバックエンドとするユーザー管理のインターフェース
type UsersRepository interface {
	// GetUserFromToken アクセストークンからユーザー情報を取得する（認証ミドルウェア用）
	GetUserFromToken(ctx context.Context, accessToken string) (*model.AuthUser, error)

	// ListUsers 全ユーザー一覧を取得する（Admin APIが必要）
	ListUsers(ctx context.Context) ([]model.AuthUser, error)

	// CreateUser 新しいユーザーを作成する（Admin APIが必要）
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.AuthUser, error)

	// UpdateUser ユーザー情報を更新する（Admin APIが必要）
	UpdateUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.AuthUser, error)

	// DeleteUser ユーザーを削除する（Admin APIが必要）
	DeleteUser(ctx context.Context, id string) error
}
