package code

import (
	"strings"
)

// lang stores the English and Chinese text of a code
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

// NormalizeLang turns a client supplied language tag (zh-CN, zh_cn, en-US...) into a supported key
// NormalizeLang 将客户端传入的语言标识转换为支持的语言
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(language, "-", "_"))
	switch {
	case strings.HasPrefix(language, "zh"):
		return "zh_cn"
	default:
		return FALLBACK_LNG
	}
}

// GetMessage returns the English message
// GetMessage 返回英文消息
func (l lang) GetMessage() string {
	return l.GetMessageIn(FALLBACK_LNG)
}

// GetMessageIn returns the message in the given language, falling back to English
// GetMessageIn 根据传入的语言返回相应的消息，缺失时回退到英文
func (l lang) GetMessageIn(language string) string {
	if NormalizeLang(language) == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// MsgIn returns the code message in the given language
// MsgIn 返回指定语言的消息
func (e *Code) MsgIn(language string) string {
	return e.Lang.GetMessageIn(language)
}
