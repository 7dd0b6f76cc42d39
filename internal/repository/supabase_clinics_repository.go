package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
	"CareFinder-App/internal/infrastructure/database"
)

type SupabaseClinicsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseClinicsRepository(client *database.SupabaseClient) repository.ClinicsRepository {
	return &SupabaseClinicsRepository{
		client: client,
	}
}

// createdAtDesc 一覧取得は作成日時の降順で返す
var createdAtDesc = &postgrest.OrderOpts{Ascending: false}

func (r *SupabaseClinicsRepository) ListByState(ctx context.Context, stateCode string) ([]model.Clinic, error) {
	var clinics []model.Clinic
	data, count, err := r.client.GetClient().From("clinics").
		Select("*", "exact", false).
		Eq("state", stateCode).
		Order("created_at", createdAtDesc).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("州 %s のクリニックデータ取得失敗: %w", stateCode, err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &clinics); err != nil {
		return nil, fmt.Errorf("クリニックデータのJSONアンマーシャル失敗: %w", err)
	}

	return clinics, nil
}

func (r *SupabaseClinicsRepository) ListAll(ctx context.Context) ([]model.Clinic, error) {
	var clinics []model.Clinic
	data, count, err := r.client.GetClient().From("clinics").
		Select("*", "exact", false).
		Order("created_at", createdAtDesc).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("クリニックデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &clinics); err != nil {
		return nil, fmt.Errorf("クリニックデータのJSONアンマーシャル失敗: %w", err)
	}

	return clinics, nil
}

func (r *SupabaseClinicsRepository) GetByID(ctx context.Context, id string) (*model.Clinic, error) {
	var clinics []model.Clinic
	data, count, err := r.client.GetClient().From("clinics").
		Select("*", "exact", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("クリニックデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &clinics); err != nil {
		return nil, fmt.Errorf("クリニックデータのJSONアンマーシャル失敗: %w", err)
	}

	// 見つからない場合はエラーではなくnilを返す（ハンドラーが404に変換する）
	if len(clinics) == 0 {
		return nil, nil
	}

	return &clinics[0], nil
}

// clinicInsertDB クリニックのDB保存用構造体
// タイムスタンプはDB側のデフォルトに任せるため含めない
type clinicInsertDB struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Phone   *string  `json:"phone,omitempty"`
	Fax     *string  `json:"fax,omitempty"`
	Email   *string  `json:"email,omitempty"`
	Address *string  `json:"address,omitempty"`
	State   *string  `json:"state,omitempty"`
	Zipcode *string  `json:"zipcode,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
	Website *string  `json:"website,omitempty"`
	Enabled bool     `json:"enabled"`
	Banned  bool     `json:"banned"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

func (r *SupabaseClinicsRepository) Create(ctx context.Context, clinic *model.Clinic) (*model.Clinic, error) {
	if clinic.ID == "" {
		clinic.ID = uuid.New().String()
	}

	insertRow := clinicInsertDB{
		ID:      clinic.ID,
		Name:    clinic.Name,
		Phone:   clinic.Phone,
		Fax:     clinic.Fax,
		Email:   clinic.Email,
		Address: clinic.Address,
		State:   clinic.State,
		Zipcode: clinic.Zipcode,
		Notes:   clinic.Notes,
		Website: clinic.Website,
		Enabled: clinic.Enabled,
		Banned:  clinic.Banned,
		Lat:     clinic.Lat,
		Lng:     clinic.Lng,
	}

	data, count, err := r.client.GetClient().From("clinics").
		Insert(insertRow, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("クリニックデータの作成失敗: %w", err)
	}
	_ = count

	var created []model.Clinic
	if err := json.Unmarshal([]byte(data), &created); err != nil {
		return nil, fmt.Errorf("作成結果のJSONアンマーシャル失敗: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("クリニックの作成結果が空です")
	}

	return &created[0], nil
}

func (r *SupabaseClinicsRepository) Update(ctx context.Context, id string, updates *model.ClinicUpdate) (*model.Clinic, error) {
	data, count, err := r.client.GetClient().From("clinics").
		Update(updates, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("クリニックデータの更新失敗: %w", err)
	}
	_ = count

	var updated []model.Clinic
	if err := json.Unmarshal([]byte(data), &updated); err != nil {
		return nil, fmt.Errorf("更新結果のJSONアンマーシャル失敗: %w", err)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("クリニックID %s が見つかりません", id)
	}

	return &updated[0], nil
}

func (r *SupabaseClinicsRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.GetClient().From("clinics").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("クリニックデータの削除失敗: %w", err)
	}

	return nil
}
