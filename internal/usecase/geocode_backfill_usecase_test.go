package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CareFinder-App/internal/domain/model"
)

// backfillClinicsRepo ClinicsRepositoryのテスト用スタブ（一覧取得のみ使用）
type backfillClinicsRepo struct {
	clinics []model.Clinic
	err     error
}

func (s *backfillClinicsRepo) ListByState(ctx context.Context, stateCode string) ([]model.Clinic, error) {
	return nil, nil
}

func (s *backfillClinicsRepo) ListAll(ctx context.Context) ([]model.Clinic, error) {
	return s.clinics, s.err
}

func (s *backfillClinicsRepo) GetByID(ctx context.Context, id string) (*model.Clinic, error) {
	return nil, nil
}

func (s *backfillClinicsRepo) Create(ctx context.Context, clinic *model.Clinic) (*model.Clinic, error) {
	return clinic, nil
}

func (s *backfillClinicsRepo) Update(ctx context.Context, id string, updates *model.ClinicUpdate) (*model.Clinic, error) {
	return nil, nil
}

func (s *backfillClinicsRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// backfillGeocodingProvider 住所ごとに固定の座標を返すスタブ
type backfillGeocodingProvider struct {
	coordsByAddress map[string]*model.LatLng
	geocodeCalls    int
}

func (s *backfillGeocodingProvider) GeocodeAddress(ctx context.Context, address string) (*model.LatLng, error) {
	s.geocodeCalls++
	return s.coordsByAddress[address], nil
}

func (s *backfillGeocodingProvider) GetTravelTimes(ctx context.Context, origin model.LatLng, destinations []model.LatLng) []model.TravelTime {
	return nil
}

// backfillCoordinatesRepo ClinicCoordinatesRepositoryのテスト用スタブ
type backfillCoordinatesRepo struct {
	updatedIDs []string
	noRowIDs   map[string]bool // 更新対象行なしを返すID
	err        error
}

func (s *backfillCoordinatesRepo) UpdateCoordinatesIfAbsent(ctx context.Context, id string, lat, lng float64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.noRowIDs[id] {
		return false, nil
	}
	s.updatedIDs = append(s.updatedIDs, id)
	return true, nil
}

func strPtr(v string) *string {
	return &v
}

func fPtr(v float64) *float64 {
	return &v
}

func TestGeocodeBackfillUseCase_BackfillCoordinates(t *testing.T) {
	ctx := context.Background()
	chicago := &model.LatLng{Lat: 41.8781, Lng: -87.6298}

	t.Run("スキップ条件ごとに件数が集計される", func(t *testing.T) {
		clinics := []model.Clinic{
			// すでに座標あり → スキップ（ジオコーディングも呼ばれない）
			{ID: "has-coords", Name: "Located", Lat: fPtr(41.0), Lng: fPtr(-87.0)},
			// 住所なし → スキップ
			{ID: "no-address", Name: "No Address"},
			// ジオコーディング解決不能 → スキップ
			{ID: "geocode-miss", Name: "Unknown Address",
				Address: strPtr("999 Nowhere Rd"), State: strPtr("IL")},
			// 成功 → 更新
			{ID: "success", Name: "Backfill Target",
				Address: strPtr("233 S Wacker Dr"), State: strPtr("IL"), Zipcode: strPtr("60606")},
		}
		repo := &backfillClinicsRepo{clinics: clinics}
		provider := &backfillGeocodingProvider{coordsByAddress: map[string]*model.LatLng{
			"233 S Wacker Dr, IL 60606": chicago,
		}}
		coordsRepo := &backfillCoordinatesRepo{}

		uc := NewGeocodeBackfillUseCase(repo, coordsRepo, provider)
		result, err := uc.BackfillCoordinates(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, 3, result.Skipped)
		assert.Equal(t, []string{"success"}, coordsRepo.updatedIDs)
		// 座標あり・住所なしの2件はジオコーディング対象外
		assert.Equal(t, 2, provider.geocodeCalls)
	})

	t.Run("更新対象行がない場合はスキップ扱い", func(t *testing.T) {
		clinics := []model.Clinic{
			{ID: "raced", Name: "Race Target",
				Address: strPtr("233 S Wacker Dr"), State: strPtr("IL"), Zipcode: strPtr("60606")},
		}
		repo := &backfillClinicsRepo{clinics: clinics}
		provider := &backfillGeocodingProvider{coordsByAddress: map[string]*model.LatLng{
			"233 S Wacker Dr, IL 60606": chicago,
		}}
		coordsRepo := &backfillCoordinatesRepo{noRowIDs: map[string]bool{"raced": true}}

		uc := NewGeocodeBackfillUseCase(repo, coordsRepo, provider)
		result, err := uc.BackfillCoordinates(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Updated)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("更新失敗は処理を止めずスキップ扱い", func(t *testing.T) {
		clinics := []model.Clinic{
			{ID: "failing", Name: "Failing Target",
				Address: strPtr("233 S Wacker Dr"), State: strPtr("IL"), Zipcode: strPtr("60606")},
			{ID: "has-coords", Name: "Located", Lat: fPtr(41.0), Lng: fPtr(-87.0)},
		}
		repo := &backfillClinicsRepo{clinics: clinics}
		provider := &backfillGeocodingProvider{coordsByAddress: map[string]*model.LatLng{
			"233 S Wacker Dr, IL 60606": chicago,
		}}
		coordsRepo := &backfillCoordinatesRepo{err: errors.New("connection reset")}

		uc := NewGeocodeBackfillUseCase(repo, coordsRepo, provider)
		result, err := uc.BackfillCoordinates(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Updated)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("一覧取得失敗はエラーを返す", func(t *testing.T) {
		repo := &backfillClinicsRepo{err: errors.New("supabase unreachable")}

		uc := NewGeocodeBackfillUseCase(repo, &backfillCoordinatesRepo{}, &backfillGeocodingProvider{})
		_, err := uc.BackfillCoordinates(ctx)
		assert.Error(t, err)
	})

	t.Run("キャンセルされたら途中結果とエラーを返す", func(t *testing.T) {
		clinics := []model.Clinic{
			{ID: "c1", Name: "Clinic 1",
				Address: strPtr("233 S Wacker Dr"), State: strPtr("IL")},
		}
		repo := &backfillClinicsRepo{clinics: clinics}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		uc := NewGeocodeBackfillUseCase(repo, &backfillCoordinatesRepo{}, &backfillGeocodingProvider{})
		result, err := uc.BackfillCoordinates(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Updated)
	})
}
