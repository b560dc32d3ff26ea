package api

import (
	"context"
	"net/http"
	"time"

	"smart-chef/internal/api/handlers/health"
	pantryHandler "smart-chef/internal/api/handlers/pantry"
	"smart-chef/internal/api/middleware"
	"smart-chef/internal/core/pantry"
	"smart-chef/internal/infrastructure/adfeed"
	"smart-chef/internal/infrastructure/config"
	"smart-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store pantry.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("store_backend", cfg.Store.Backend),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化服務
	rankOpts := pantry.RankOptions{
		MealShare: cfg.Recommend.MealShare,
		TopN:      cfg.Recommend.TopN,
	}
	cookSvc := pantry.NewCookService(store, cfg.Recommend.MatchThreshold)
	recommendSvc := pantry.NewRecommendService(store, cfg.Recommend.MatchThreshold, rankOpts)
	adClient := adfeed.NewClient(cfg.AdFeed.URL, cfg.AdFeed.Timeout, cfg.AdFeed.CacheTTL)

	// 全局中間件：設置超時與配置注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		h := pantryHandler.NewHandler(store, cookSvc, recommendSvc, adClient)

		profileGroup := api.Group("/profiles/:profile")
		{
			// 推薦
			profileGroup.GET("/recommendations", h.HandleRecommendations)

			// 食譜與評分
			profileGroup.GET("/recipes", h.HandleListRecipes)
			profileGroup.POST("/recipes", h.HandleAddRecipe)
			profileGroup.GET("/recipes/:id/missing", h.HandleMissingItems)
			profileGroup.POST("/ratings", h.HandleRate)

			// 庫存
			profileGroup.GET("/inventory", h.HandleListInventory)
			profileGroup.POST("/inventory", h.HandleAddInventory)
			profileGroup.PUT("/inventory", h.HandleReplaceInventory)

			// 烹飪交易；去重視窗內的重複提交會被拒絕
			profileGroup.POST("/cook", middleware.Deduplication(cfg.DedupWindow), h.HandleCook)
			profileGroup.POST("/cook/undo", h.HandleUndoCook)
			profileGroup.GET("/cook-log", h.HandleCookLog)

			// 購物清單
			profileGroup.GET("/shopping-list", h.HandleShoppingList)
			profileGroup.POST("/shopping-list", h.HandleAddShoppingItem)

			// 偏好與目標
			profileGroup.GET("/preferences", h.HandleGetPreferences)
			profileGroup.PUT("/preferences", h.HandlePutPreferences)
			profileGroup.GET("/goals", h.HandleGetGoals)
			profileGroup.PUT("/goals", h.HandlePutGoals)

			// 特價廣告
			profileGroup.GET("/ads", h.HandleListAds)
			profileGroup.POST("/ads/sync", h.HandleSyncAds)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
