package repository

import (
	"context"

	"CareFinder-App/internal/domain/model"
)

// GeocodingProvider 外部マッピングサービスによるジオコーディングと走行時間取得のインターフェース
type GeocodingProvider interface {
	// GeocodeAddress フリーテキスト住所を座標に解決する
	// 上流サービスがゼロ件または非成功ステータスを返した場合は nil, nil を返す
	// （エラーではなく「この住所では近接検索を続行できない」という正常な結果として扱う）
	GeocodeAddress(ctx context.Context, address string) (*model.LatLng, error)

	// GetTravelTimes 出発地から各目的地への運転時間を並行して取得する
	// 戻り値は destinations と同じ長さ・同じ順序のスライス。
	// 個別の目的地の取得失敗はバッチ全体を中断せず、該当要素に
	// 失敗ステータスのセンチネルを格納する
	GetTravelTimes(ctx context.Context, origin model.LatLng, destinations []model.LatLng) []model.TravelTime
}
