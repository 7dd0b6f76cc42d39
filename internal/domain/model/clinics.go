package model

import (
	"fmt"
	"time"
)

// LatLng 緯度経度を表す基本的な型（ジオコーディングや距離計算で使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Clinic クリニックを表すモデル（Supabaseのclinicsテーブルに対応）
type Clinic struct {
	ID        string    `json:"id" db:"id"`                         // ユニークなクリニックID
	Name      string    `json:"name" db:"name"`                     // クリニック名
	Phone     *string   `json:"phone" db:"phone"`                   // 電話番号（NULLABLE）
	Fax       *string   `json:"fax" db:"fax"`                       // FAX番号（NULLABLE）
	Email     *string   `json:"email" db:"email"`                   // メールアドレス（NULLABLE）
	Address   *string   `json:"address" db:"address"`               // 住所（NULLABLE）
	State     *string   `json:"state" db:"state"`                   // 州コード（例: 'IL', 'NY'）
	Zipcode   *string   `json:"zipcode" db:"zipcode"`               // 郵便番号（NULLABLE）
	Notes     *string   `json:"notes" db:"notes"`                   // 備考（NULLABLE）
	Website   *string   `json:"website" db:"website"`               // WebサイトURL（NULLABLE）
	Enabled   bool      `json:"enabled" db:"enabled"`               // 有効フラグ（デフォルトtrue）
	Banned    bool      `json:"banned" db:"banned"`                 // BANフラグ（デフォルトfalse）
	Lat       *float64  `json:"lat" db:"lat"`                       // 緯度（未ジオコーディングの場合NULL）
	Lng       *float64  `json:"lng" db:"lng"`                       // 経度（未ジオコーディングの場合NULL）
	CreatedAt time.Time `json:"created_at" db:"created_at"`         // 作成日時
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`         // 更新日時
}

// HasCoordinates 座標が保存されているかチェック
func (c *Clinic) HasCoordinates() bool {
	return c.Lat != nil && c.Lng != nil
}

// ToLatLng クリニックの保存座標をLatLng型に変換（座標がない場合はnil）
func (c *Clinic) ToLatLng() *LatLng {
	if !c.HasCoordinates() {
		return nil
	}
	return &LatLng{Lat: *c.Lat, Lng: *c.Lng}
}

// FullAddress ジオコーディング用の完全な住所文字列を組み立てる
// 形式: "住所, 州コード 郵便番号"（郵便番号は省略可能）
func (c *Clinic) FullAddress() string {
	if c.Address == nil || c.State == nil {
		return ""
	}
	full := fmt.Sprintf("%s, %s", *c.Address, *c.State)
	if c.Zipcode != nil && *c.Zipcode != "" {
		full = fmt.Sprintf("%s %s", full, *c.Zipcode)
	}
	return full
}

// ClinicInsert クリニック作成リクエストのボディ
type ClinicInsert struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Fax     *string `json:"fax"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	State   *string `json:"state"`
	Zipcode *string `json:"zipcode"`
	Notes   *string `json:"notes"`
	Website *string `json:"website"`
	Enabled *bool   `json:"enabled"` // 未指定の場合はtrue
}

// ClinicUpdate クリニック更新リクエストのボディ（全フィールド任意）
type ClinicUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Fax     *string `json:"fax,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	State   *string `json:"state,omitempty"`
	Zipcode *string `json:"zipcode,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Website *string `json:"website,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
	Banned  *bool   `json:"banned,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}
