package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/service"
	"CareFinder-App/internal/usecase"
	repoImpl "CareFinder-App/internal/repository"
)

// ClinicsHandler クリニックAPIのハンドラー
type ClinicsHandler struct {
	searchUseCase usecase.ClinicSearchUseCase
	adminUseCase  usecase.ClinicAdminUseCase
}

// NewClinicsHandler 新しいClinicsHandlerインスタンスを作成
func NewClinicsHandler(searchUseCase usecase.ClinicSearchUseCase, adminUseCase usecase.ClinicAdminUseCase) *ClinicsHandler {
	return &ClinicsHandler{
		searchUseCase: searchUseCase,
		adminUseCase:  adminUseCase,
	}
}

// GetClinics GET /api/clinics - クリニック一覧取得・近接検索
// クエリパラメータ:
//   - state: 州コード（完全一致）
//   - search: フリーテキスト住所（stateと併用で近接検索を実行）
//   - extraFilter: クリニック名の部分一致フィルタ
func (h *ClinicsHandler) GetClinics(c *gin.Context) {
	state := c.Query("state")
	search := c.Query("search")
	extraFilter := c.Query("extraFilter")

	// 住所検索には州コードが必須
	if search != "" && state == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "state parameter is required when search is given",
		})
		return
	}

	response, err := h.searchUseCase.GetClinics(c.Request.Context(), state, search, extraFilter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSearchRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get clinics: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetClinicsInBoundingBox GET /api/clinics/bbox - 地図の表示範囲内のクリニック一覧を取得
func (h *ClinicsHandler) GetClinicsInBoundingBox(c *gin.Context) {
	bbox := c.Query("bbox")
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "bbox parameter is required (format: min_lng,min_lat,max_lng,max_lat)",
		})
		return
	}

	bound, err := repoImpl.ParseBoundingBox(bbox)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
		return
	}

	clinics, err := h.adminUseCase.ListClinicsInBoundingBox(c.Request.Context(), bound)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get clinics: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clinics": clinics})
}

// GetClinicByID GET /api/clinics/:id - クリニックの詳細を取得
func (h *ClinicsHandler) GetClinicByID(c *gin.Context) {
	id := c.Param("id")

	clinic, err := h.adminUseCase.GetClinic(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get clinic: " + err.Error(),
		})
		return
	}
	if clinic == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Clinic not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clinic": clinic})
}

// CreateClinic POST /api/clinics - クリニックの作成（要管理者権限）
func (h *ClinicsHandler) CreateClinic(c *gin.Context) {
	var req model.ClinicInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "クリニック名は必須です",
		})
		return
	}

	clinic, err := h.adminUseCase.CreateClinic(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create clinic: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"clinic": clinic})
}

// UpdateClinic PUT /api/clinics/:id - クリニックの更新（要管理者権限）
func (h *ClinicsHandler) UpdateClinic(c *gin.Context) {
	id := c.Param("id")

	var req model.ClinicUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	clinic, err := h.adminUseCase.UpdateClinic(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to update clinic: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clinic": clinic})
}

// DeleteClinic DELETE /api/clinics/:id - クリニックの削除（要管理者権限）
func (h *ClinicsHandler) DeleteClinic(c *gin.Context) {
	id := c.Param("id")

	if err := h.adminUseCase.DeleteClinic(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete clinic: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Clinic deleted"})
}
