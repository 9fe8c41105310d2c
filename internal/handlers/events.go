// internal/handlers/events.go
package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/services"
)

const keepAliveInterval = 25 * time.Second

// streamEvents relays the session events called name as server-sent events
// until the client goes away.
func streamEvents(c *gin.Context, session *services.Session, name string, payload func(services.Event) interface{}) {
	events, unsubscribe := session.Events.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.SSEvent("ready", gin.H{"session_id": session.ID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-keepAlive.C:
			c.SSEvent("ping", "")
			return true
		case e, ok := <-events:
			if !ok {
				return false
			}
			if e.Name == name {
				c.SSEvent(e.Name, payload(e))
			}
			return true
		}
	})
}
