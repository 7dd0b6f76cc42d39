package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	domainRepo "CareFinder-App/internal/domain/repository"
	"CareFinder-App/internal/domain/service"
	"CareFinder-App/internal/handler"
	"CareFinder-App/internal/infrastructure/database"
	"CareFinder-App/internal/infrastructure/firestore"
	"CareFinder-App/internal/infrastructure/maps"
	"CareFinder-App/internal/repository"
	"CareFinder-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")
	googleMapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" || googleMapsAPIKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY, GOOGLE_MAPS_API_KEY")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}

	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")

	ctx := context.Background()

	// リポジトリとプロバイダの初期化
	clinicsRepo := repository.NewSupabaseClinicsRepository(supabaseClient)
	geocodingProvider := maps.NewGoogleGeocodingProvider(googleMapsAPIKey)
	usersRepo := repository.NewSupabaseUsersRepository(
		supabaseURL, supabaseAnonKey, os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
	)

	// 検索ログ用のFirestoreはオプショナル（未設定ならログ保存をスキップ）
	var searchLogRepo domainRepo.SearchLogRepository
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer firestoreClient.Close()
		searchLogRepo = repository.NewFirestoreSearchLogRepository(firestoreClient.GetClient())
	} else {
		fmt.Println("⚠️  FIRESTORE_PROJECT_IDが未設定のため検索ログの保存は無効です")
	}

	// サービスとユースケースの初期化
	searchService := service.NewProximitySearchService(clinicsRepo, geocodingProvider)
	searchUseCase := usecase.NewClinicSearchUseCase(clinicsRepo, searchService, searchLogRepo)
	adminUseCase := usecase.NewClinicAdminUseCase(clinicsRepo, geocodingProvider)

	// ハンドラーの初期化
	clinicsHandler := handler.NewClinicsHandler(searchUseCase, adminUseCase)
	usersHandler := handler.NewUsersHandler(usersRepo)

	// ルーティングの設定
	r := gin.Default()
	r.Use(handler.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "CareFinder-App"})
		})

		api.GET("/clinics", clinicsHandler.GetClinics)
		api.GET("/clinics/bbox", clinicsHandler.GetClinicsInBoundingBox)
		api.GET("/clinics/:id", clinicsHandler.GetClinicByID)

		// 変更系は管理者のみ
		adminClinics := api.Group("/clinics")
		adminClinics.Use(handler.AuthMiddleware(usersRepo), handler.RequireAdmin())
		{
			adminClinics.POST("", clinicsHandler.CreateClinic)
			adminClinics.PUT("/:id", clinicsHandler.UpdateClinic)
			adminClinics.DELETE("/:id", clinicsHandler.DeleteClinic)
		}

		// ユーザー管理は管理者のみ
		adminUsers := api.Group("/auth/users")
		adminUsers.Use(handler.AuthMiddleware(usersRepo), handler.RequireAdmin())
		{
			adminUsers.GET("", usersHandler.ListUsers)
			adminUsers.POST("", usersHandler.CreateUser)
			adminUsers.PUT("/:id", usersHandler.UpdateUser)
			adminUsers.DELETE("/:id", usersHandler.DeleteUser)
		}

		// ジオコーディング一括実行はPostgreSQL直接接続が必要
		if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
			postgresClient, err := database.NewPostgreSQLClient()
			if err != nil {
				log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
			}
			coordinatesRepo := repository.NewPostgresClinicsRepository(postgresClient)
			backfillUseCase := usecase.NewGeocodeBackfillUseCase(clinicsRepo, coordinatesRepo, geocodingProvider)
			geocodeHandler := handler.NewGeocodeClinicsHandler(backfillUseCase)

			api.GET("/geo-code-clinics",
				handler.AuthMiddleware(usersRepo), handler.RequireAdmin(), geocodeHandler.GeocodeClinics)
		} else {
			fmt.Println("⚠️  SUPABASE_DB_PASSWORDが未設定のためジオコーディング一括実行は無効です")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("CareFinder-App server starting on :%s...\n", port)
	log.Fatal(r.Run(":" + port))
}
