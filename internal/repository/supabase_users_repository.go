package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// SupabaseUsersRepository Supabase Authをバックエンドとするユーザーリポジトリ
// トークン検証はanonキー、ユーザーCRUDはservice roleキーのAdmin APIを使用する
type SupabaseUsersRepository struct {
	authClient  gotrue.Client
	adminClient gotrue.Client
}

// NewSupabaseUsersRepository 新しいSupabaseUsersRepositoryインスタンスを作成
// serviceRoleKeyが空の場合、Admin APIを使う操作はエラーを返す
func NewSupabaseUsersRepository(supabaseURL, anonKey, serviceRoleKey string) repository.UsersRepository {
	projectRef := extractProjectRef(supabaseURL)
	authURL := supabaseURL + "/auth/v1"

	repo := &SupabaseUsersRepository{
		authClient: gotrue.New(projectRef, anonKey).WithCustomGoTrueURL(authURL),
	}
	if serviceRoleKey != "" {
		repo.adminClient = gotrue.New(projectRef, serviceRoleKey).
			WithCustomGoTrueURL(authURL).
			WithToken(serviceRoleKey)
	}
	return repo
}

// extractProjectRef SupabaseのURLからプロジェクト参照を抽出 (https://xxx.supabase.co -> xxx)
func extractProjectRef(supabaseURL string) string {
	host := strings.TrimPrefix(supabaseURL, "https://")
	return strings.Split(host, ".")[0]
}

func (r *SupabaseUsersRepository) GetUserFromToken(ctx context.Context, accessToken string) (*model.AuthUser, error) {
	resp, err := r.authClient.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("トークンからのユーザー取得に失敗: %w", err)
	}

	user := formatAuthUser(resp.User)
	return &user, nil
}

func (r *SupabaseUsersRepository) ListUsers(ctx context.Context) ([]model.AuthUser, error) {
	if r.adminClient == nil {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEYが設定されていないためAdmin APIを使用できません")
	}

	resp, err := r.adminClient.AdminListUsers()
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗: %w", err)
	}

	users := make([]model.AuthUser, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, formatAuthUser(u))
	}
	return users, nil
}

func (r *SupabaseUsersRepository) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.AuthUser, error) {
	if r.adminClient == nil {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEYが設定されていないためAdmin APIを使用できません")
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	password := req.Password
	resp, err := r.adminClient.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        req.Email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"name": req.Name,
			"role": role,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}

	user := formatAuthUser(resp.User)
	return &user, nil
}

func (r *SupabaseUsersRepository) UpdateUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.AuthUser, error) {
	if r.adminClient == nil {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEYが設定されていないためAdmin APIを使用できません")
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("無効なユーザーID %q: %w", id, err)
	}

	updateReq := types.AdminUpdateUserRequest{
		UserID: userID,
	}
	if req.Email != nil {
		updateReq.Email = *req.Email
	}
	if req.Password != nil {
		updateReq.Password = *req.Password
	}

	// user_metadataはマージされないため、name/roleの両方を常に送る
	metadata := map[string]interface{}{}
	if req.Name != nil {
		metadata["name"] = *req.Name
	}
	if req.Role != nil {
		metadata["role"] = *req.Role
	}
	if len(metadata) > 0 {
		updateReq.UserMetadata = metadata
	}

	resp, err := r.adminClient.AdminUpdateUser(updateReq)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの更新に失敗: %w", err)
	}

	user := formatAuthUser(resp.User)
	return &user, nil
}

func (r *SupabaseUsersRepository) DeleteUser(ctx context.Context, id string) error {
	if r.adminClient == nil {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEYが設定されていないためAdmin APIを使用できません")
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("無効なユーザーID %q: %w", id, err)
	}

	if err := r.adminClient.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: userID}); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗: %w", err)
	}

	return nil
}

// formatAuthUser gotrueのユーザーを管理画面向けのモデルに整形する
func formatAuthUser(u types.User) model.AuthUser {
	name := ""
	role := model.RoleUser

	if v, ok := u.UserMetadata["name"].(string); ok && v != "" {
		name = v
	}
	if v, ok := u.UserMetadata["role"].(string); ok && v != "" {
		role = v
	}
	if name == "" && u.Email != "" {
		// 表示名がない場合はメールアドレスのローカル部を使う
		name = strings.Split(u.Email, "@")[0]
	}

	return model.AuthUser{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           name,
		Role:           role,
		CreatedAt:      u.CreatedAt,
		LastSignIn:     u.LastSignInAt,
		EmailConfirmed: u.EmailConfirmedAt != nil,
	}
}
