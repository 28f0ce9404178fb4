package routers

import (
	"time"

	"github.com/haierkeys/fast-note-folder-service/internal/app"
	"github.com/haierkeys/fast-note-folder-service/internal/middleware"
	"github.com/haierkeys/fast-note-folder-service/internal/routers/api_router"
	"github.com/haierkeys/fast-note-folder-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// SearchPath 搜索接口路径，限流规则按此键匹配
const SearchPath = "/api/search"

// newMethodLimiters 根据配置创建路由限流器
func newMethodLimiters(cfg *app.AppConfig) limiter.Face {
	l := limiter.NewMethodLimiter()
	if rate := cfg.App.SearchRateLimit; rate > 0 {
		l = l.AddBuckets(limiter.BucketRule{
			Key:          SearchPath,
			FillInterval: time.Second,
			Capacity:     rate,
			Quantum:      rate,
		})
	}
	return l
}

// NewRouter 创建对外 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()
	r.NoRoute(middleware.NoFound())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.Metrics())
		api.Use(middleware.RateLimiter(newMethodLimiters(cfg)))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 健康检查（无需认证）
		healthHandler := api_router.NewHealthHandler(appContainer)
		api.GET("/health", healthHandler.Check)

		// 创建 Handlers（注入 App Container）
		folderHandler := api_router.NewFolderHandler(appContainer)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(appContainer.TokenManager))
		auth.GET("/folders", folderHandler.List)
		auth.GET("/folder/:folderId/notes", folderHandler.Notes)
		auth.PUT("/folder/:folderId", folderHandler.Rename)
		auth.PUT("/note/:noteId/folder", folderHandler.MoveNote)
		auth.GET("/search", folderHandler.Search)
	}

	return r
}
