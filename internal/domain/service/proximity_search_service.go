package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"CareFinder-App/internal/domain/helper"
	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// ErrInvalidSearchRequest 近接検索に必須のパラメータが不足している場合のエラー
var ErrInvalidSearchRequest = errors.New("近接検索にはstateとaddressの両方が必要です")

// ProximitySearchService 住所ベースの近接検索とランキングを行うサービス
type ProximitySearchService interface {
	// Search 州コードとフリーテキスト住所からランキング済みクリニック一覧を生成する
	Search(ctx context.Context, req *model.ClinicSearchRequest) (*model.ClinicSearchResult, error)
}

type proximitySearchServiceImpl struct {
	clinicsRepo       repository.ClinicsRepository
	geocodingProvider repository.GeocodingProvider
}

// NewProximitySearchService 新しいProximitySearchServiceインスタンスを作成
func NewProximitySearchService(clinicsRepo repository.ClinicsRepository, geocodingProvider repository.GeocodingProvider) ProximitySearchService {
	return &proximitySearchServiceImpl{
		clinicsRepo:       clinicsRepo,
		geocodingProvider: geocodingProvider,
	}
}

// Search 近接検索のパイプライン:
// 候補取得 → 名前フィルタ → ジオコーディング → 距離計算 → ソート →
// 上位10件に切り詰め → 最寄り3件の走行時間取得 → 最終ソート
func (s *proximitySearchServiceImpl) Search(ctx context.Context, req *model.ClinicSearchRequest) (*model.ClinicSearchResult, error) {
	// Step 1: 必須パラメータの検証（ネットワーク呼び出しの前に行う）
	if strings.TrimSpace(req.State) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, ErrInvalidSearchRequest
	}

	// Step 2: 州コードで候補を取得
	candidates, err := s.clinicsRepo.ListByState(ctx, req.State)
	if err != nil {
		return nil, err
	}

	// Step 3: 名前の部分一致フィルタ（大文字小文字無視）
	if req.NameFilter != "" {
		candidates = filterByName(candidates, req.NameFilter)
	}

	// 候補ゼロならジオコーディングは不要
	if len(candidates) == 0 {
		return &model.ClinicSearchResult{RankedClinics: []model.RankedClinic{}}, nil
	}

	// Step 4: 住所を座標に解決する
	// 解決できない場合は「この住所では結果なし」という正常な結果として空を返す
	userCoordinate, err := s.geocodingProvider.GeocodeAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if userCoordinate == nil {
		log.Printf("⚠️ ジオコーディング解決不能のため検索を終了 (state=%s, address=%q, candidates=%d)",
			req.State, req.Address, len(candidates))
		return &model.ClinicSearchResult{RankedClinics: []model.RankedClinic{}}, nil
	}

	// Step 5: 座標を持つ候補にのみ距離を付与する
	// 座標未登録の候補はランク付けできないため除外し、件数を記録する
	ranked := make([]model.RankedClinic, 0, len(candidates))
	dropped := 0
	for _, clinic := range candidates {
		coord := clinic.ToLatLng()
		if coord == nil {
			dropped++
			continue
		}
		distanceKm := helper.HaversineKmLatLng(*userCoordinate, *coord)
		distanceMi := helper.KmToMiles(distanceKm)
		ranked = append(ranked, model.RankedClinic{
			Clinic:     clinic,
			DistanceKm: &distanceKm,
			DistanceMi: &distanceMi,
		})
	}
	if dropped > 0 {
		log.Printf("⚠️ 座標未登録のため%d件の候補を除外 (state=%s)", dropped, req.State)
	}

	// Step 6: 距離の昇順でソート（同値は元の順序を維持）
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DistanceKm < *ranked[j].DistanceKm
	})

	// Step 7: 上位10件に切り詰め（走行時間取得コストとレスポンスサイズの上限）
	if len(ranked) > model.MaxRankedClinics {
		ranked = ranked[:model.MaxRankedClinics]
	}

	// Step 8: 最寄り3件の走行時間を取得
	enrichCount := model.MaxTravelTimeLookups
	if len(ranked) < enrichCount {
		enrichCount = len(ranked)
	}

	if enrichCount > 0 {
		destinations := make([]model.LatLng, enrichCount)
		for i := 0; i < enrichCount; i++ {
			destinations[i] = *ranked[i].ToLatLng()
		}

		// 結果はIDではなくインデックスで突き合わせる
		// （ゲートウェイが同じ長さ・同じ順序を保証している）
		travelTimes := s.geocodingProvider.GetTravelTimes(ctx, *userCoordinate, destinations)

		// Step 9: マージ。取得失敗分はTravelTimeを付与せずステータスのみ記録する
		for i := 0; i < enrichCount; i++ {
			tt := travelTimes[i]
			if tt.HasUsableDuration() {
				value := tt
				ranked[i].TravelTime = &value
			} else {
				ranked[i].TravelTimeStatus = tt.Status
				log.Printf("⚠️ 走行時間の取得失敗 (clinic=%s, status=%s): 距離ベースの順位を維持",
					ranked[i].ID, tt.Status)
			}
		}
	}

	// Step 10: 最終ソート
	// 走行時間を持つグループが先頭（走行時間の昇順）、残りは距離の昇順
	sort.SliceStable(ranked, func(i, j int) bool {
		iHas := ranked[i].TravelTime != nil
		jHas := ranked[j].TravelTime != nil
		if iHas != jHas {
			return iHas
		}
		if iHas {
			return ranked[i].TravelTime.Duration.Seconds < ranked[j].TravelTime.Duration.Seconds
		}
		return *ranked[i].DistanceKm < *ranked[j].DistanceKm
	})

	return &model.ClinicSearchResult{
		RankedClinics:        ranked,
		UserCoordinate:       userCoordinate,
		DroppedNoCoordinates: dropped,
	}, nil
}

// filterByName クリニック名の部分一致フィルタ（大文字小文字無視）
func filterByName(clinics []model.Clinic, nameFilter string) []model.Clinic {
	needle := strings.ToLower(nameFilter)
	var filtered []model.Clinic
	for _, clinic := range clinics {
		if strings.Contains(strings.ToLower(clinic.Name), needle) {
			filtered = append(filtered, clinic)
		}
	}
	return filtered
}
