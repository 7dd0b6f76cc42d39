package model

// SearchConstants 近接検索で使用する定数
const (
	// MaxRankedClinics 距離ソート後に返す最大件数（走行時間取得コストの上限）
	MaxRankedClinics = 10

	// MaxTravelTimeLookups 走行時間を取得する最寄り件数
	MaxTravelTimeLookups = 3
)

// StatusConstants Google Maps APIのステータス定数
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusError       = "ERROR" // 通信失敗などAPIに到達できなかった場合
)

// RoleConstants ユーザーロールの定数（Supabase Authのuser_metadataに保存）
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
