package repository

import (
	"context"
	"fmt"

	"CareFinder-App/internal/domain/repository"
	"CareFinder-App/internal/infrastructure/database"
)

// PostgresClinicsRepository ジオコーディング結果の書き込み専用リポジトリ
// PostgREST経由ではなく直接SQLで型付きの部分更新を行う
type PostgresClinicsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresClinicsRepository(client *database.PostgreSQLClient) repository.ClinicCoordinatesRepository {
	return &PostgresClinicsRepository{
		client: client,
	}
}

// UpdateCoordinatesIfAbsent 座標が未設定の行にのみlat/lngを書き込む
// WHERE句で両方NULLの場合に限定しているため何度実行しても安全（冪等）
func (r *PostgresClinicsRepository) UpdateCoordinatesIfAbsent(ctx context.Context, id string, lat, lng float64) (bool, error) {
	query := `UPDATE clinics SET lat = $1, lng = $2, updated_at = NOW() WHERE id = $3 AND lat IS NULL AND lng IS NULL`

	result, err := r.client.DB.ExecContext(ctx, query, lat, lng, id)
	if err != nil {
		return false, fmt.Errorf("クリニック %s の座標更新失敗: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("更新行数の取得失敗: %w", err)
	}

	return affected > 0, nil
}
