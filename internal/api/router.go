package api

import (
	"time"

	"budget-recipe-api/internal/api/handlers/health"
	recipeHandler "budget-recipe-api/internal/api/handlers/recipe"
	"budget-recipe-api/internal/api/middleware"
	recipeService "budget-recipe-api/internal/core/recipe"
	"budget-recipe-api/internal/infrastructure/config"
	"budget-recipe-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter 設置路由。recipeSvc 在啟動時建立，之後唯讀共用
func SetupRouter(cfg *config.Config, recipeSvc *recipeService.Service) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.MaxBodyBytes))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, recipeSvc)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 食譜路由：任何方法都交給 handler，由 handler 回應 405
	recipeHandlerInstance := recipeHandler.NewHandler(recipeSvc, cfg.IsDevelopment())
	router.Any("/api/recipe", recipeHandlerInstance.HandleRecipe)
	router.Any("/api/v1/recipe", recipeHandlerInstance.HandleRecipe)

	common.LogInfo("Router setup completed successfully",
		zap.String("environment", cfg.App.Env),
		zap.Bool("provider_ready", recipeSvc.Ready()),
		zap.Bool("expose_error_details", cfg.IsDevelopment()),
		zap.Int64("max_body_size", cfg.MaxBodyBytes),
	)

	return router
}
