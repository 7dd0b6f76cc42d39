package repository

import (
	"context"

	"CareFinder-App/internal/domain/model"
)

// SearchLogRepository 近接検索の監査ログを保存するリポジトリのインターフェース
// 保存はベストエフォート。失敗しても検索リクエスト自体は成功させる
type SearchLogRepository interface {
	// SaveSearchLog 検索ログを保存する
	SaveSearchLog(ctx context.Context, searchLog *model.SearchLog) error
}
