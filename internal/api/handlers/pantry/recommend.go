package pantry

import (
	"net/http"
	"time"

	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleRecommendations 取得今晚的推薦清單
func (h *Handler) HandleRecommendations(c *gin.Context) {
	reqID := requestID(c)
	profile := profileParam(c)

	ranked, err := h.recommendSvc.Recommend(profile, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("推薦計算完成",
		zap.String("request_id", reqID),
		zap.String("profile", profile),
		zap.Int("count", len(ranked)),
	)

	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"recommendations": ranked,
	})
}

// HandleMissingItems 檢查食譜相對於庫存缺少的食材
func (h *Handler) HandleMissingItems(c *gin.Context) {
	profile := profileParam(c)
	recipeID := c.Param("id")

	missing, err := h.recommendSvc.MissingItems(profile, recipeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id": recipeID,
		"missing":   missing,
	})
}
