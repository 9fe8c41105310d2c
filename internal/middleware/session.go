// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/utils"
)

// SessionHeader carries the session token for clients that do not keep
// cookies.
const SessionHeader = "X-Session-Token"

// Session attaches an anonymous shopping session to every request. A missing
// or invalid token starts a new session; the token is echoed back in both
// the header and the cookie.
func Session(cfg config.SessionConfig, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			token, _ = c.Cookie(cfg.CookieName)
		}

		var sessionID string
		if token != "" {
			if claims, err := utils.ValidateSessionToken(token); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = utils.NewSessionID()
			var err error
			token, err = utils.GenerateSessionToken(sessionID, cfg.TTLHours)
			if err != nil {
				logrus.WithError(err).Error("Failed to issue session token")
				utils.InternalErrorResponse(c, "")
				c.Abort()
				return
			}
			logrus.WithField("session_id", sessionID).Debug("Started new session")
		}

		c.Header(SessionHeader, token)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, token, cfg.TTLHours*3600, "/", "", secureCookie, true)

		c.Set("session_id", sessionID)
		c.Next()
	}
}
