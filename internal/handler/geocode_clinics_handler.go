package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"CareFinder-App/internal/usecase"
)

// GeocodeClinicsHandler ジオコーディング一括実行APIのハンドラー
type GeocodeClinicsHandler struct {
	backfillUseCase usecase.GeocodeBackfillUseCase
}

// NewGeocodeClinicsHandler 新しいGeocodeClinicsHandlerインスタンスを作成
func NewGeocodeClinicsHandler(backfillUseCase usecase.GeocodeBackfillUseCase) *GeocodeClinicsHandler {
	return &GeocodeClinicsHandler{
		backfillUseCase: backfillUseCase,
	}
}

// GeocodeClinics GET /api/geo-code-clinics - 座標未登録クリニックの一括ジオコーディング（要管理者権限）
func (h *GeocodeClinicsHandler) GeocodeClinics(c *gin.Context) {
	result, err := h.backfillUseCase.BackfillCoordinates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to geocode clinics: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
