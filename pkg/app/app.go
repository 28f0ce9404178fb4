package app

import (
	"strings"

	"github.com/haierkeys/fast-note-folder-service/pkg/code"

	"github.com/gin-gonic/gin"
)

const (
	// LangKey gin.Context key of the negotiated response language
	// LangKey gin.Context 中响应语言的键
	LangKey = "lang"
	// TraceIDKey gin.Context key of the request trace id
	// TraceIDKey gin.Context 中追踪 ID 的键
	TraceIDKey = "trace_id"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// Res is the unified response structure: Code/Status/Msg/Data
// Res 是统一的响应结构：Code/Status/Msg/Data
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetLang returns the response language of the request, "en" when none was negotiated
// GetLang 获取当前请求的响应语言
func GetLang(c *gin.Context) string {
	if v, ok := c.Get(LangKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return code.FALLBACK_LNG
}

// GetTraceID 从 gin.Context 获取 Trace ID
func GetTraceID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(TraceIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToResponse writes codeObj as the JSON envelope with the HTTP status the code carries
// ToResponse 输出到浏览器，HTTP 状态码由 code 决定
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.MsgIn(GetLang(r.Ctx)),
		Data:    codeObj.Data(),
		TraceID: GetTraceID(r.Ctx),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
