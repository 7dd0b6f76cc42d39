package model

import "time"

// TravelDistance 走行距離（Google Directions APIのlegから変換）
type TravelDistance struct {
	Text   string `json:"text"`
	Meters int    `json:"meters"`
}

// TravelDuration 走行時間（Google Directions APIのlegから変換）
type TravelDuration struct {
	Text    string `json:"text"`
	Seconds int    `json:"seconds"`
}

// TravelTime 1つの目的地への運転時間の結果
// StatusがStatusOK以外の場合、DistanceとDurationはゼロ値のセンチネル
type TravelTime struct {
	Distance TravelDistance `json:"distance"`
	Duration TravelDuration `json:"duration"`
	Status   string         `json:"status"`
}

// HasUsableDuration 走行時間がランキングに使える値かチェック
func (t *TravelTime) HasUsableDuration() bool {
	return t.Status == StatusOK && t.Duration.Seconds > 0
}

// RankedClinic 近接検索の結果として距離情報を付与されたクリニック
// TravelTimeは最寄りの数件にのみ付与される。走行時間の取得に失敗した場合は
// TravelTimeをnilのままTravelTimeStatusに失敗ステータスのみを記録する
type RankedClinic struct {
	Clinic
	DistanceKm       *float64    `json:"distanceKm,omitempty"`
	DistanceMi       *float64    `json:"distanceMi,omitempty"`
	TravelTime       *TravelTime `json:"travelTime,omitempty"`
	TravelTimeStatus string      `json:"travelTimeStatus,omitempty"`
}

// ClinicSearchRequest 近接検索のリクエストパラメータ
type ClinicSearchRequest struct {
	State      string // 州コード（必須・完全一致）
	Address    string // フリーテキスト住所（必須）
	NameFilter string // クリニック名の部分一致フィルタ（任意・大文字小文字無視）
}

// ClinicSearchResult 近接検索の結果
// UserCoordinateがnilの場合はジオコーディング失敗（システムエラーではない）
type ClinicSearchResult struct {
	RankedClinics        []RankedClinic
	UserCoordinate       *LatLng
	DroppedNoCoordinates int // 座標未登録のため除外した候補数
}

// ClinicsResponse GET /api/clinics のレスポンス
type ClinicsResponse struct {
	Clinics        []RankedClinic `json:"clinics"`
	UserCoordinate *LatLng        `json:"userCoordinate,omitempty"`
}

// SearchLog Firestoreに保存する検索監査ログ
type SearchLog struct {
	ID                   string    `firestore:"id" json:"id"`
	State                string    `firestore:"state" json:"state"`
	Address              string    `firestore:"address" json:"address"`
	NameFilter           string    `firestore:"nameFilter,omitempty" json:"nameFilter,omitempty"`
	UserCoordinate       *LatLng   `firestore:"userCoordinate,omitempty" json:"userCoordinate,omitempty"`
	ResultCount          int       `firestore:"resultCount" json:"resultCount"`
	DroppedNoCoordinates int       `firestore:"droppedNoCoordinates" json:"droppedNoCoordinates"`
	CreatedAt            time.Time `firestore:"createdAt" json:"createdAt"`
}

// GeocodeBackfillResult ジオコーディング一括実行の結果
type GeocodeBackfillResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
