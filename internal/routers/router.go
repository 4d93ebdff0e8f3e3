// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/labnote/labnote-service/internal/app"
	"github.com/labnote/labnote-service/internal/middleware"
	"github.com/labnote/labnote-service/internal/routers/api_router"
	"github.com/labnote/labnote-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 认证相关接口单独限流，降低撞库与暴力注册的速率
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/auth",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	// 创建 Handlers（注入 App Container）
	authHandler := api_router.NewAuthHandler(appContainer)
	userHandler := api_router.NewUserHandler(appContainer)
	entryHandler := api_router.NewEntryHandler(appContainer)
	entryVersionHandler := api_router.NewEntryVersionHandler(appContainer)
	projectHandler := api_router.NewProjectHandler(appContainer)
	templateHandler := api_router.NewTemplateHandler(appContainer)
	healthHandler := api_router.NewHealthHandler(appContainer)

	// 健康检查无需认证，也不参与限流
	r.GET("/healthz", healthHandler.Check)

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 公开接口：注册、登录与联合登录
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/check-username", authHandler.CheckUsername)
		api.GET("/auth/oauth/:provider", authHandler.OAuthLogin)
		api.GET("/auth/oauth/:provider/callback", authHandler.OAuthCallback)

		// 认证接口：所有条目、项目、模板操作均要求有效 Token
		auth := api.Group("", middleware.UserAuthTokenWithLookup(cfg.Security.AuthTokenKey, appContainer.UserRepo.GetByUID))
		{
			auth.GET("/user/me", userHandler.Me)
			auth.PUT("/user/me", userHandler.UpdateMe)
			auth.DELETE("/user/me", userHandler.DeleteMe)

			auth.POST("/entries", entryHandler.Create)
			auth.GET("/entries", entryHandler.List)
			auth.GET("/entries/:id", entryHandler.Get)
			auth.PUT("/entries/:id", entryHandler.Update)
			auth.DELETE("/entries/:id", entryHandler.Delete)
			auth.GET("/entries/:id/export", entryHandler.Export)

			auth.GET("/entries/:id/versions", entryVersionHandler.List)
			auth.POST("/entries/:id/versions/:versionId/restore", entryVersionHandler.Restore)

			auth.POST("/projects", projectHandler.Create)
			auth.GET("/projects", projectHandler.List)
			auth.GET("/projects/:id", projectHandler.Get)
			auth.DELETE("/projects/:id", projectHandler.Delete)
			auth.POST("/projects/:id/collaborators", projectHandler.AddCollaborator)
			auth.GET("/projects/:id/collaborators", projectHandler.ListCollaborators)

			auth.POST("/templates", templateHandler.Create)
			auth.GET("/templates", templateHandler.List)
			auth.GET("/templates/:id", templateHandler.Get)
			auth.PUT("/templates/:id", templateHandler.Update)
			auth.DELETE("/templates/:id", templateHandler.Delete)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
