package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

// FirestoreSearchLogRepository Firestoreを使用した検索監査ログリポジトリ
type FirestoreSearchLogRepository struct {
	client *firestore.Client
}

func NewFirestoreSearchLogRepository(client *firestore.Client) repository.SearchLogRepository {
	return &FirestoreSearchLogRepository{
		client: client,
	}
}

// SaveSearchLog 検索ログをsearchLogsコレクションに保存する
func (r *FirestoreSearchLogRepository) SaveSearchLog(ctx context.Context, searchLog *model.SearchLog) error {
	if searchLog.ID == "" {
		searchLog.ID = uuid.New().String()
	}
	if searchLog.CreatedAt.IsZero() {
		searchLog.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("searchLogs").Doc(searchLog.ID).Set(ctx, searchLog)
	if err != nil {
		return fmt.Errorf("検索ログの保存に失敗しました: %w", err)
	}

	return nil
}
