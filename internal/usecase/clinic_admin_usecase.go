package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/paulmach/orb"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
	repoImpl "CareFinder-App/internal/repository"
)

// ClinicAdminUseCase 管理用のクリニックCRUDと地図表示向け取得のユースケース
type ClinicAdminUseCase interface {
	// GetClinic IDでクリニックを取得（見つからない場合はnil, nil）
	GetClinic(ctx context.Context, id string) (*model.Clinic, error)

	// CreateClinic クリニックを作成する。住所と州があれば作成時にジオコーディングする
	CreateClinic(ctx context.Context, req *model.ClinicInsert) (*model.Clinic, error)

	// UpdateClinic クリニックを部分更新する
	UpdateClinic(ctx context.Context, id string, req *model.ClinicUpdate) (*model.Clinic, error)

	// DeleteClinic クリニックを削除する
	DeleteClinic(ctx context.Context, id string) error

	// ListClinicsInBoundingBox 地図の表示範囲内に座標を持つクリニックを取得する
	ListClinicsInBoundingBox(ctx context.Context, bound orb.Bound) ([]model.Clinic, error)
}

type clinicAdminUseCaseImpl struct {
	clinicsRepo       repository.ClinicsRepository
	geocodingProvider repository.GeocodingProvider
}

// NewClinicAdminUseCase 新しいClinicAdminUseCaseインスタンスを作成
func NewClinicAdminUseCase(clinicsRepo repository.ClinicsRepository, geocodingProvider repository.GeocodingProvider) ClinicAdminUseCase {
	return &clinicAdminUseCaseImpl{
		clinicsRepo:       clinicsRepo,
		geocodingProvider: geocodingProvider,
	}
}

func (u *clinicAdminUseCaseImpl) GetClinic(ctx context.Context, id string) (*model.Clinic, error) {
	return u.clinicsRepo.GetByID(ctx, id)
}

func (u *clinicAdminUseCaseImpl) CreateClinic(ctx context.Context, req *model.ClinicInsert) (*model.Clinic, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("クリニック名は必須です")
	}
	if req.State != nil && *req.State != "" && !model.IsValidStateCode(*req.State) {
		return nil, fmt.Errorf("無効な州コードです: %s", *req.State)
	}

	clinic := &model.Clinic{
		Name:    req.Name,
		Phone:   req.Phone,
		Fax:     req.Fax,
		Email:   req.Email,
		Address: req.Address,
		State:   req.State,
		Zipcode: req.Zipcode,
		Notes:   req.Notes,
		Website: req.Website,
		Enabled: true,
	}
	if req.Enabled != nil {
		clinic.Enabled = *req.Enabled
	}

	// 住所と州があれば作成時にジオコーディングを試みる
	// 解決できなくても作成は続行する（バックフィルで後から補完できる）
	if fullAddress := clinic.FullAddress(); fullAddress != "" {
		coords, err := u.geocodingProvider.GeocodeAddress(ctx, fullAddress)
		if err != nil {
			return nil, err
		}
		if coords != nil {
			clinic.Lat = &coords.Lat
			clinic.Lng = &coords.Lng
		} else {
			log.Printf("⚠️ 作成時のジオコーディング解決不能 (name=%s, address=%q)", clinic.Name, fullAddress)
		}
	}

	return u.clinicsRepo.Create(ctx, clinic)
}

func (u *clinicAdminUseCaseImpl) UpdateClinic(ctx context.Context, id string, req *model.ClinicUpdate) (*model.Clinic, error) {
	if req.State != nil && *req.State != "" && !model.IsValidStateCode(*req.State) {
		return nil, fmt.Errorf("無効な州コードです: %s", *req.State)
	}
	return u.clinicsRepo.Update(ctx, id, req)
}

func (u *clinicAdminUseCaseImpl) DeleteClinic(ctx context.Context, id string) error {
	return u.clinicsRepo.Delete(ctx, id)
}

func (u *clinicAdminUseCaseImpl) ListClinicsInBoundingBox(ctx context.Context, bound orb.Bound) ([]model.Clinic, error) {
	clinics, err := u.clinicsRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return repoImpl.FilterClinicsInBound(clinics, bound), nil
}
