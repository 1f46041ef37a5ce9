package controller

import (
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/ikkim/hubline-admin/internal/middleware"
	"github.com/ikkim/hubline-admin/internal/websocket"
)

type ActivityController struct {
	hub      *websocket.ActivityHub
	upgrader gorillaws.Upgrader
}

func NewActivityController(hub *websocket.ActivityHub, allowedOrigins []string) *ActivityController {
	return &ActivityController{
		hub:      hub,
		upgrader: websocket.NewUpgrader(allowedOrigins),
	}
}

// Connect upgrades to a websocket that streams audit entries
// GET /api/v1/admin/ws/activity?token=<access token>
func (ctrl *ActivityController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, _ := middleware.GetUserID(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	client := websocket.NewClient(ctrl.hub, &websocket.Conn{Conn: conn}, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
