// Package errors turns service errors into the unified JSON response
// Package errors 将服务层错误转换为统一的 JSON 响应
package errors

import (
	"errors"

	pkgapp "github.com/haierkeys/fast-note-folder-service/pkg/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AsCode returns the *code.Code carried by err, unknown errors become ErrorServerInternal
// AsCode 从错误链中取出 *code.Code，未知错误转为服务器内部错误
func AsCode(err error) *code.Code {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// ErrorResponse 统一错误响应处理
// Internal details never reach the client: only the registered message of the code is written.
func ErrorResponse(c *gin.Context, err error) {
	if err == nil {
		return
	}
	pkgapp.NewResponse(c).ToResponse(AsCode(err))
}
