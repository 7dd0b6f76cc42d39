package usecase

import (
	"context"
	"log"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// GeocodeBackfillUseCase 座標未登録のクリニックをまとめてジオコーディングするユースケース
// ベストエフォートの一括処理で、座標が両方未設定の行にのみ書き込む（冪等）
type GeocodeBackfillUseCase interface {
	// BackfillCoordinates 全クリニックを走査して座標を補完する
	BackfillCoordinates(ctx context.Context) (*model.GeocodeBackfillResult, error)
}

type geocodeBackfillUseCaseImpl struct {
	clinicsRepo       repository.ClinicsRepository
	coordinatesRepo   repository.ClinicCoordinatesRepository
	geocodingProvider repository.GeocodingProvider
}

// NewGeocodeBackfillUseCase 新しいGeocodeBackfillUseCaseインスタンスを作成
func NewGeocodeBackfillUseCase(
	clinicsRepo repository.ClinicsRepository,
	coordinatesRepo repository.ClinicCoordinatesRepository,
	geocodingProvider repository.GeocodingProvider,
) GeocodeBackfillUseCase {
	return &geocodeBackfillUseCaseImpl{
		clinicsRepo:       clinicsRepo,
		coordinatesRepo:   coordinatesRepo,
		geocodingProvider: geocodingProvider,
	}
}

func (u *geocodeBackfillUseCaseImpl) BackfillCoordinates(ctx context.Context) (*model.GeocodeBackfillResult, error) {
	clinics, err := u.clinicsRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("📍 %d件のクリニックのジオコーディングを開始", len(clinics))

	result := &model.GeocodeBackfillResult{}

	for _, clinic := range clinics {
		// キャンセルされたら途中まで処理した結果を返す
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// すでに座標がある場合はスキップ
		if clinic.HasCoordinates() {
			result.Skipped++
			continue
		}

		// 住所か州がない場合はジオコーディングできないのでスキップ
		fullAddress := clinic.FullAddress()
		if fullAddress == "" {
			log.Printf("⏭️ スキップ (住所または州なし): %s", clinic.Name)
			result.Skipped++
			continue
		}

		coords, err := u.geocodingProvider.GeocodeAddress(ctx, fullAddress)
		if err != nil {
			return result, err
		}
		if coords == nil {
			log.Printf("⏭️ スキップ (ジオコーディング解決不能): %s - %q", clinic.Name, fullAddress)
			result.Skipped++
			continue
		}

		updated, err := u.coordinatesRepo.UpdateCoordinatesIfAbsent(ctx, clinic.ID, coords.Lat, coords.Lng)
		if err != nil {
			log.Printf("❌ 座標の更新失敗 (%s): %v", clinic.Name, err)
			result.Skipped++
			continue
		}
		if !updated {
			// 一覧取得後に別の処理が座標を書き込んだ場合
			log.Printf("⏭️ スキップ (更新対象行なし): %s", clinic.Name)
			result.Skipped++
			continue
		}

		log.Printf("✔ 座標を更新: %s → %f, %f", clinic.Name, coords.Lat, coords.Lng)
		result.Updated++
	}

	log.Printf("✅ ジオコーディング完了: %d件更新 / %d件スキップ", result.Updated, result.Skipped)
	return result, nil
}
