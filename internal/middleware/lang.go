package middleware

import (
	"strings"

	"github.com/haierkeys/fast-note-folder-service/pkg/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// The language is stored per request so concurrent requests never see each other's choice.
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = s
		}

		lang = code.NormalizeLang(lang)
		c.Set(app.LangKey, lang)

		if uni != nil {
			// zh_cn -> zh -> en
			if trans, found := uni.FindTranslator(lang, strings.SplitN(lang, "_", 2)[0], code.FALLBACK_LNG); found {
				c.Set(app.TransKey, trans)
			}
		}

		c.Next()
	}
}
