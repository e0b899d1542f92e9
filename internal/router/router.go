package router

import (
	"fmt"
	"strings"

	"github.com/bombershop-next/internal/cache"
	"github.com/bombershop-next/internal/config"
	adminhandlers "github.com/bombershop-next/internal/http/handlers/admin"
	publichandlers "github.com/bombershop-next/internal/http/handlers/public"
	"github.com/bombershop-next/internal/logger"
	"github.com/bombershop-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bs"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 结算回调
		apiV1.POST("/webhooks/snipcart", publicHandler.SnipcartWebhook)

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateAdminProduct)
				authorized.PUT("/products/:id/categories", adminHandler.SetAdminProductCategories)
				authorized.PUT("/products/:id/enhancement", adminHandler.UpsertAdminProductEnhancement)
				authorized.DELETE("/products/:id/enhancement", adminHandler.DeleteAdminProductEnhancement)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateAdminCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteAdminCategory)

				// 订单转发记录
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.POST("/orders/:id/relay", adminHandler.RetryAdminOrderRelay)

				// 目录同步
				authorized.POST("/sync", adminHandler.TriggerAdminSync)
				authorized.GET("/sync/runs", adminHandler.GetAdminSyncRuns)
				authorized.GET("/sync/runs/latest", adminHandler.GetAdminLatestSyncRun)
				authorized.GET("/sync/runs/:id", adminHandler.GetAdminSyncRun)
			}
		}
	}

	return r
}
