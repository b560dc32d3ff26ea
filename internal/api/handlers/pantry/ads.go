package pantry

import (
	"net/http"

	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleListAds 列出目前的特價廣告表
func (h *Handler) HandleListAds(c *gin.Context) {
	profile := profileParam(c)

	ads, err := h.store.LoadAds(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"ads":     ads,
	})
}

// HandleSyncAds 從外部來源抓取特價廣告並覆寫 ads 資料表
func (h *Handler) HandleSyncAds(c *gin.Context) {
	reqID := requestID(c)
	profile := profileParam(c)

	count, err := h.adClient.Sync(c.Request.Context(), h.store, profile)
	if err != nil {
		common.LogError("廣告同步失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("profile", profile),
		)
		writeError(c, common.ErrAdFeedError)
		return
	}

	common.LogInfo("廣告同步完成",
		zap.String("request_id", reqID),
		zap.String("profile", profile),
		zap.Int("count", count),
	)

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"synced":  count,
	})
}
