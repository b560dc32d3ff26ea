package pantry

import (
	"net/http"

	corepantry "smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleGetPreferences 讀取偏好設定
func (h *Handler) HandleGetPreferences(c *gin.Context) {
	profile := profileParam(c)

	prefs, err := h.store.LoadPreferences(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// HandlePutPreferences 覆寫偏好設定
func (h *Handler) HandlePutPreferences(c *gin.Context) {
	profile := profileParam(c)

	var prefs corepantry.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	if err := h.store.SavePreferences(profile, prefs); err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("偏好設定已更新",
		zap.String("profile", profile),
	)

	c.JSON(http.StatusOK, prefs)
}

// HandleGetGoals 讀取營養目標
func (h *Handler) HandleGetGoals(c *gin.Context) {
	profile := profileParam(c)

	goals, err := h.store.LoadGoals(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// HandlePutGoals 覆寫營養目標
func (h *Handler) HandlePutGoals(c *gin.Context) {
	profile := profileParam(c)

	var goals corepantry.Goals
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	if goals.Adventurous < 0 || goals.Adventurous > 10 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "adventurous must be between 0 and 10",
		})
		return
	}
	switch goals.CarbPref {
	case corepantry.CarbPrefLower, corepantry.CarbPrefBalanced, corepantry.CarbPrefHigher:
	default:
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "unknown carb preference",
		})
		return
	}

	if err := h.store.SaveGoals(profile, goals); err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("營養目標已更新",
		zap.String("profile", profile),
		zap.Int("daily_calorie_target", goals.DailyCalorieTarget),
		zap.String("carb_pref", goals.CarbPref),
	)

	c.JSON(http.StatusOK, goals)
}
