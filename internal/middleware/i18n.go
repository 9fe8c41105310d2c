// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/javajoker/florist-backend/internal/i18n"
)

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.MustParse(i18n.DefaultLocale),
})

// I18nMiddleware labels responses with the language of the message
// catalog. Prices and dates are formatted for Indonesia regardless; only
// the messages are localized, and a single catalog ships.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, _, _ := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		tag, _, _ := supportedLanguages.Match(tags...)
		base, _ := tag.Base()

		c.Header("Content-Language", base.String())
		c.Next()
	}
}
