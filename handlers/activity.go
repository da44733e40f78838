package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/middleware"
	"github.com/milassets/backend/natsserver"
	"github.com/milassets/backend/repository"
	"github.com/milassets/backend/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Activity exposes the live asset event stream.
type Activity struct {
	hub    *services.ActivityHub
	bus    *natsserver.EmbeddedNATS
	tokens *auth.TokenService
	users  *repository.Users
	log    *zap.Logger
}

// NewActivity creates the activity handler group.
func NewActivity(hub *services.ActivityHub, bus *natsserver.EmbeddedNATS, tokens *auth.TokenService, users *repository.Users, log *zap.Logger) *Activity {
	return &Activity{hub: hub, bus: bus, tokens: tokens, users: users, log: log}
}

// resolveUsername identifies the connecting client when it presents a valid
// token via the usual headers or, since browser WebSocket clients cannot
// set headers, a token query parameter. Unidentified clients still connect.
func (h *Activity) resolveUsername(c *gin.Context) string {
	token := middleware.ExtractToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return "anonymous"
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		return "anonymous"
	}
	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		return "anonymous"
	}
	return user.Username
}

// HandleWebSocket handles GET /ws/activity.
func (h *Activity) HandleWebSocket(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Activity hub not initialized"})
		return
	}

	username := h.resolveUsername(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := services.NewActivityClient(h.hub, conn, username, c.ClientIP())
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// Stats handles GET /api/activity/stats.
func (h *Activity) Stats(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	stats := h.hub.Stats()
	resp := gin.H{
		"enabled": true,
		"clients": stats.Clients,
		"events":  stats.Events,
	}
	if h.bus != nil {
		resp["nats"] = h.bus.GetStats()
	}
	c.JSON(http.StatusOK, resp)
}
