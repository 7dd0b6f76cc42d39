package test

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"CareFinder-App/internal/domain/repository"
	"CareFinder-App/internal/infrastructure/database"
	repoimpl "CareFinder-App/internal/repository"
)

// setupTestEnvironment .envを読み込み、不足している環境変数名を返す
func setupTestEnvironment(requiredVars ...string) []string {
	// CI環境等では.envが存在しない場合があるため読み込み失敗は無視
	_ = godotenv.Load("../.env")

	var missing []string
	for _, envVar := range requiredVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	return missing
}

// setupTestClinicsRepository Supabase接続のクリニックリポジトリをセットアップする
func setupTestClinicsRepository() (repository.ClinicsRepository, error) {
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		return nil, err
	}
	if err := supabaseClient.HealthCheck(); err != nil {
		return nil, err
	}
	return repoimpl.NewSupabaseClinicsRepository(supabaseClient), nil
}

// setupTestCoordinatesRepository PostgreSQL直接接続の座標リポジトリをセットアップする（リトライ付き）
func setupTestCoordinatesRepository() (repository.ClinicCoordinatesRepository, func(), error) {
	// 接続テストでは短いリトライ間隔を使用
	postgresClient, err := database.NewPostgreSQLClientWithRetry(5, 1*time.Second)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		postgresClient.Close()
	}

	return repoimpl.NewPostgresClinicsRepository(postgresClient), cleanup, nil
}
