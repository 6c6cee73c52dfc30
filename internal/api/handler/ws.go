package handler

import (
	"net/http"
	"strings"

	"cinechat/backend/internal/auth"
	"cinechat/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are handled by the deployment's reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// bearerToken extracts the token from the Authorization header or, failing
// that, the token query parameter (browser WebSocket clients cannot set
// headers).
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// ServeWebSocket is the connection gate: it authenticates the handshake and
// binds the connection to its room before any room interaction happens.
// Rejections are plain HTTP errors issued before the upgrade, so a failed
// attempt leaves no connection state behind.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token missing"})
		return
	}

	identity, err := auth.VerifyWithTimeout(c.Request.Context(), h.Verifier, token, h.VerifyTimeout)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication is invalid"})
		return
	}

	// The room ID is an opaque string; no format or membership check here.
	roomID := c.Query("chatId")
	if roomID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "chatId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn, identity.UserID, roomID, h.logger)

	h.Hub.RegisterCh <- client
	client.Run()
}
