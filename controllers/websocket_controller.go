package controllers

import (
	"net/http"

	"KidScreen/websocket"

	"github.com/gin-gonic/gin"
)

var WebSocketHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	WebSocketHub = hub
	go WebSocketHub.Run()
}

// ServeWs подключает клиента к каналу его семьи.
func ServeWs(c *gin.Context) {
	userUID := c.GetString("user_uid")
	userType := c.GetString("user_type")
	familyUID := c.GetString("family_uid")
	if userUID == "" || familyUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	websocket.ServeWs(WebSocketHub, c.Writer, c.Request, userUID, familyUID, userType)
}
