package websocket

import (
	"signops-backend/config"
	"signops-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService defines a token validator interface
type AuthService interface {
	VerifyToken(token string) (*token.Payload, error)
}

// WsHandler manages WebSocket upgrade requests and connection lifecycles.
type WsHandler struct {
	hub  *Hub
	auth AuthService
}

func NewWsHandler(hub *Hub, auth AuthService) *WsHandler {
	return &WsHandler{hub: hub, auth: auth}
}

// HandleWebSocket authenticates via the HTTPOnly access token cookie and
// upgrades the connection. Connected clients only receive events; inbound
// frames are drained and discarded.
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	tokenStr := c.Cookies("access_token")
	if tokenStr == "" {
		config.Logger.Warn("WebSocket connection attempted without access token cookie")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	payload, err := h.auth.VerifyToken(tokenStr)
	if err != nil {
		config.Logger.Warn("Invalid access token for WebSocket", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	userID := payload.UserID

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			Conn:   conn,
			Hub:    h.hub,
			Send:   make(chan Event, 16),
		}

		h.hub.register <- client
		config.Logger.Info("WebSocket client connected",
			zap.String("user_id", userID.String()),
			zap.String("client_id", client.ID.String()),
		)

		defer func() {
			h.hub.unregister <- client
			conn.Close()
		}()

		// Writer
		go func() {
			for event := range client.Send {
				if err := conn.WriteJSON(event); err != nil {
					config.Logger.Debug("WebSocket write failed", zap.Error(err))
					return
				}
			}
		}()

		// Reader: drain until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})(c)
}
