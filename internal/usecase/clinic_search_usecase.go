package usecase

import (
	"context"
	"log"
	"strings"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
	"CareFinder-App/internal/domain/service"
)

// ClinicSearchUseCase クリニック一覧取得と近接検索のユースケース
type ClinicSearchUseCase interface {
	// GetClinics クエリパラメータに応じて一覧取得または近接検索を行う
	// state空: 全件、state指定: 州内一覧、state+search指定: ランキング付き検索
	GetClinics(ctx context.Context, state, search, extraFilter string) (*model.ClinicsResponse, error)
}

type clinicSearchUseCaseImpl struct {
	clinicsRepo   repository.ClinicsRepository
	searchService service.ProximitySearchService
	searchLogRepo repository.SearchLogRepository // nilの場合はログ保存をスキップ
}

// NewClinicSearchUseCase 新しいClinicSearchUseCaseインスタンスを作成
func NewClinicSearchUseCase(
	clinicsRepo repository.ClinicsRepository,
	searchService service.ProximitySearchService,
	searchLogRepo repository.SearchLogRepository,
) ClinicSearchUseCase {
	return &clinicSearchUseCaseImpl{
		clinicsRepo:   clinicsRepo,
		searchService: searchService,
		searchLogRepo: searchLogRepo,
	}
}

func (u *clinicSearchUseCaseImpl) GetClinics(ctx context.Context, state, search, extraFilter string) (*model.ClinicsResponse, error) {
	// 州コードの指定がない場合は全件を返す
	if state == "" {
		clinics, err := u.clinicsRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return &model.ClinicsResponse{Clinics: toUnranked(clinics)}, nil
	}

	// 住所検索がない場合は州内の一覧を返す（名前フィルタのみ適用）
	if search == "" {
		clinics, err := u.clinicsRepo.ListByState(ctx, state)
		if err != nil {
			return nil, err
		}
		if extraFilter != "" {
			clinics = filterClinicsByName(clinics, extraFilter)
		}
		return &model.ClinicsResponse{Clinics: toUnranked(clinics)}, nil
	}

	// 近接検索パイプラインを実行
	result, err := u.searchService.Search(ctx, &model.ClinicSearchRequest{
		State:      state,
		Address:    search,
		NameFilter: extraFilter,
	})
	if err != nil {
		return nil, err
	}

	// 検索ログの保存はベストエフォート（失敗しても検索自体は成功させる）
	u.saveSearchLog(ctx, state, search, extraFilter, result)

	return &model.ClinicsResponse{
		Clinics:        result.RankedClinics,
		UserCoordinate: result.UserCoordinate,
	}, nil
}

func (u *clinicSearchUseCaseImpl) saveSearchLog(ctx context.Context, state, search, extraFilter string, result *model.ClinicSearchResult) {
	if u.searchLogRepo == nil {
		return
	}

	searchLog := &model.SearchLog{
		State:                state,
		Address:              search,
		NameFilter:           extraFilter,
		UserCoordinate:       result.UserCoordinate,
		ResultCount:          len(result.RankedClinics),
		DroppedNoCoordinates: result.DroppedNoCoordinates,
	}

	if err := u.searchLogRepo.SaveSearchLog(ctx, searchLog); err != nil {
		log.Printf("⚠️ 検索ログの保存に失敗 (state=%s, address=%q): %v", state, search, err)
	}
}

// toUnranked ランキングなしの一覧をレスポンス形式に変換する
func toUnranked(clinics []model.Clinic) []model.RankedClinic {
	ranked := make([]model.RankedClinic, 0, len(clinics))
	for _, clinic := range clinics {
		ranked = append(ranked, model.RankedClinic{Clinic: clinic})
	}
	return ranked
}

// filterClinicsByName クリニック名の部分一致フィルタ（大文字小文字無視）
func filterClinicsByName(clinics []model.Clinic, nameFilter string) []model.Clinic {
	needle := strings.ToLower(nameFilter)
	var filtered []model.Clinic
	for _, clinic := range clinics {
		if strings.Contains(strings.ToLower(clinic.Name), needle) {
			filtered = append(filtered, clinic)
		}
	}
	return filtered
}
