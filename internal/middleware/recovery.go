package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-folder-service/pkg/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"
	"github.com/haierkeys/fast-note-folder-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
// The panic value is logged only, the client gets a bare internal error.
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.String("router", path),
					zap.String("method", c.Request.Method),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.Int64(logger.FieldUID, app.GetUID(c)),
					zap.String(logger.FieldTraceID, app.GetTraceID(c)),
					zap.String("stack", string(debug.Stack())), // 错误堆栈
				}
				switch v := rec.(type) {
				case error:
					lg.Error("Recovered from panic", append(fields, zap.Error(v))...)
				default:
					// 非 error 类型的 panic
					lg.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", fmt.Sprintf("%v", v)))...)
				}

				// 返回统一的错误响应
				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
