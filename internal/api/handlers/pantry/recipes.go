package pantry

import (
	"net/http"
	"time"

	corepantry "smart-chef/internal/core/pantry"
	"smart-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddRecipeRequest 新增食譜
type AddRecipeRequest struct {
	Title              string   `json:"title" binding:"required"`
	Ingredients        string   `json:"ingredients" binding:"required"` // 逗號分隔
	Steps              string   `json:"steps"`
	Tags               string   `json:"tags"` // 逗號分隔
	Image              string   `json:"image"`
	CaloriesPerServing *float64 `json:"calories_per_serving,omitempty"`
	ProteinG           *float64 `json:"protein_g,omitempty"`
	CarbsG             *float64 `json:"carbs_g,omitempty"`
	FatG               *float64 `json:"fat_g,omitempty"`
	Servings           int      `json:"servings"`
	MealType           string   `json:"meal_type"`
}

// RateRequest 對食譜評分，rating 僅允許 +1 或 -1
type RateRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
}

// HandleListRecipes 列出食譜
func (h *Handler) HandleListRecipes(c *gin.Context) {
	profile := profileParam(c)

	recipes, err := h.store.LoadRecipes(profile)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"recipes": recipes,
	})
}

// HandleAddRecipe 新增食譜
func (h *Handler) HandleAddRecipe(c *gin.Context) {
	reqID := requestID(c)
	profile := profileParam(c)

	var req AddRecipeRequest
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

	recipe := corepantry.Recipe{
		ID:                 common.GenerateUUID(),
		Title:              req.Title,
		Ingredients:        req.Ingredients,
		Steps:              req.Steps,
		Tags:               req.Tags,
		Image:              req.Image,
		CaloriesPerServing: req.CaloriesPerServing,
		ProteinG:           req.ProteinG,
		CarbsG:             req.CarbsG,
		FatG:               req.FatG,
		Servings:           req.Servings,
		MealType:           req.MealType,
	}
	recipes = append(recipes, recipe)

	if err := h.store.SaveRecipes(profile, recipes); err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("食譜已新增",
		zap.String("request_id", reqID),
		zap.String("profile", profile),
		zap.String("title", recipe.Title),
	)

	c.JSON(http.StatusCreated, recipe)
}

// HandleRate 追加一筆評分紀錄；評分只追加、不覆寫
func (h *Handler) HandleRate(c *gin.Context) {
	profile := profileParam(c)

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}
	if req.Rating != 1 && req.Rating != -1 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "rating must be +1 or -1",
		})
		return
	}

	ratings, err := h.store.LoadRatings(profile)
	if err != nil {
		writeError(c, err)
		return
	}
	rating := corepantry.Rating{
		RecipeID: req.RecipeID,
		Rating:   req.Rating,
		TS:       time.Now().UTC().Format(time.RFC3339),
	}
	ratings = append(ratings, rating)

	if err := h.store.SaveRatings(profile, ratings); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}
