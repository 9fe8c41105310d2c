// internal/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/i18n"
	"github.com/javajoker/florist-backend/internal/services"
	"github.com/javajoker/florist-backend/internal/utils"
)

// currentSession resolves the session attached by the session middleware.
// It writes a 401 and returns nil when the request carries none.
func currentSession(c *gin.Context, sessions *services.SessionManager) *services.Session {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "SESSION_REQUIRED", i18n.T(i18n.KeySessionRequired), nil)
		return nil
	}
	return sessions.Get(sessionID)
}
