// Package pantry 提供庫存、食譜、推薦與烹飪交易的 HTTP 處理程序
package pantry

import (
	"errors"
	"net/http"

	"smart-chef/internal/core/pantry"
	"smart-chef/internal/infrastructure/adfeed"
	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler 庫存與推薦處理程序
type Handler struct {
	store        pantry.Store
	cookService  *pantry.CookService
	recommendSvc *pantry.RecommendService
	adClient     *adfeed.Client
}

// NewHandler 創建新的處理程序
func NewHandler(store pantry.Store, cookService *pantry.CookService,
	recommendSvc *pantry.RecommendService, adClient *adfeed.Client) *Handler {
	return &Handler{
		store:        store,
		cookService:  cookService,
		recommendSvc: recommendSvc,
		adClient:     adClient,
	}
}

// requestID 取得或補發請求識別碼
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// profileParam 路徑上的 profile 名稱；空字串回退為 default
func profileParam(c *gin.Context) string {
	p := c.Param("profile")
	if p == "" {
		p = "default"
	}
	return p
}

// writeError 統一錯誤響應：自定義錯誤帶狀態碼與代碼，其餘一律 500
func writeError(c *gin.Context, err error) {
	var ce *common.CustomError
	if errors.As(err, &ce) {
		c.JSON(ce.Status, common.ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		})
		return
	}
	common.LogError("請求處理失敗",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	})
}
