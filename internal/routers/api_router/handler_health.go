// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"os"
	"runtime"
	"time"

	"github.com/haierkeys/fast-note-folder-service/internal/app"
	pkgapp "github.com/haierkeys/fast-note-folder-service/pkg/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status     string  `json:"status"`     // "healthy" 或 "unhealthy"
	Version    string  `json:"version"`    // 服务版本号
	Uptime     float64 `json:"uptime"`     // 运行时间（秒）
	Database   string  `json:"database"`   // "connected" 或 "error"
	Goroutines int     `json:"goroutines"` // 协程数
	WriteQueue int     `json:"writeQueue"` // 活跃写队列数
	RSS        uint64  `json:"rss"`        // 进程常驻内存（字节）
	MemUsed    float64 `json:"memUsed"`    // 系统内存使用率（%）
}

// Check 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:     "healthy",
		Version:    h.App.Version().Version,
		Uptime:     time.Since(h.App.StartTime).Seconds(),
		Database:   "connected",
		Goroutines: runtime.NumGoroutine(),
		WriteQueue: h.App.WriteQueueManager().QueueCount(),
	}

	// 主机指标获取失败时保持零值
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			response.RSS = info.RSS
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		response.MemUsed = vm.UsedPercent
	}

	// 检查数据库连接
	sqlDB, err := h.App.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.App.Logger().Warn("health check database ping failed", zap.Error(err))
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
