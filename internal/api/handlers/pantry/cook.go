package pantry

import (
	"net/http"
	"time"

	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookRequest 烹飪請求
type CookRequest struct {
	RecipeID         string `json:"recipe_id" binding:"required"`
	Servings         int    `json:"servings"`
	AutoShoppingList bool   `json:"auto_shopping_list"`
}

// HandleCook 執行烹飪交易：扣減庫存、寫入紀錄，
// 並視需要把歸零品項加入購物清單
func (h *Handler) HandleCook(c *gin.Context) {
	reqID := requestID(c)
	profile := profileParam(c)

	var req CookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	recipes, err := h.store.LoadRecipes(profile)
	if err != nil {
		writeError(c, err)
		return
	}
	found := false
	var target int
	for i := range recipes {
		if recipes[i].ID == req.RecipeID {
			target = i
			found = true
			break
		}
	}
	if !found {
		writeError(c, common.ErrRecipeNotFound)
		return
	}

	result, err := h.cookService.Cook(profile, recipes[target], req.Servings, req.AutoShoppingList, time.Now())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleUndoCook 復原最近一次烹飪交易
func (h *Handler) HandleUndoCook(c *gin.Context) {
	profile := profileParam(c)

	entry, err := h.cookService.Undo(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"undone": entry,
	})
}

// HandleCookLog 列出烹飪紀錄
func (h *Handler) HandleCookLog(c *gin.Context) {
	profile := profileParam(c)

	entries, err := h.store.LoadCookLog(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":     profile,
		"entries":     entries,
		"undoable_ts": h.cookService.LastCookTS(profile),
	})
}
