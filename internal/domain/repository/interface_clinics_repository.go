package repository

import (
	"context"

	"CareFinder-App/internal/domain/model"
)

// ClinicsRepository クリニックデータへのアクセスを提供するリポジトリのインターフェース
type ClinicsRepository interface {
	// ListByState 州コードに完全一致するクリニック一覧を取得（作成日時の降順）
	ListByState(ctx context.Context, stateCode string) ([]model.Clinic, error)

	// ListAll 全クリニック一覧を取得（作成日時の降順）
	ListAll(ctx context.Context) ([]model.Clinic, error)

	// GetByID IDでクリニックを取得（見つからない場合はnil, nil）
	GetByID(ctx context.Context, id string) (*model.Clinic, error)

	// Create 新しいクリニックを作成して保存後のレコードを返す
	Create(ctx context.Context, clinic *model.Clinic) (*model.Clinic, error)

	// Update クリニックを部分更新して更新後のレコードを返す
	Update(ctx context.Context, id string, updates *model.ClinicUpdate) (*model.Clinic, error)

	// Delete クリニックを削除する
	Delete(ctx context.Context, id string) error
}

// ClinicCoordinatesRepository ジオコーディング結果の座標書き込み専用リポジトリ
// バックフィル処理が使用する。lat/lngが両方NULLの行にのみ書き込む（冪等）
type ClinicCoordinatesRepository interface {
	// UpdateCoordinatesIfAbsent 座標が未設定の場合のみlat/lngを書き込む
	// 実際に更新された場合はtrueを返す
	UpdateCoordinatesIfAbsent(ctx context.Context, id string, lat, lng float64) (bool, error)
}
