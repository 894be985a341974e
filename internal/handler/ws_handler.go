package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kontor/kontor-backend/internal/ws"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades connections and attaches them to the event feed
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// HandleWebSocket godoc
// @Summary Subscribe to ledger change events
// @Description Upgrades to a WebSocket and streams transaction and filter
// @Description change events as JSON messages.
// @Tags websocket
// @Router /ws [get]
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := ws.NewClient(conn, h.hub)
	h.hub.Register(client)

	log.Debug().
		Str("client_id", client.ID()).
		Str("remote_addr", c.Request().RemoteAddr).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
