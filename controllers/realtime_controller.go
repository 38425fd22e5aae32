package controllers

import (
	"net/http"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// AlertSocket upgrades the connection and keeps it registered with the
// hub until the client goes away. The read loop only exists to detect
// the close.
func AlertSocket(hub *services.RealtimeHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middlewares.UserID(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade failed")
			return
		}

		client := &services.WSClient{UserID: userID, Conn: conn}
		hub.Register(client)
		defer hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func RegisterDevice(ps *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Platform string `json:"platform" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		device, err := ps.RegisterDevice(middlewares.UserID(c), req.Platform, req.Token)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, device)
	}
}
