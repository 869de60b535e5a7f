package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fleetworks/transport-backend/internal/middleware"
	"github.com/fleetworks/transport-backend/internal/services"
)

// WebSocketHandler attaches the authenticated session to the event hub.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFrom(c)
		services.HandleWebSocket(hub, c.Writer, c.Request, p.UserID, p.Role)
	}
}
