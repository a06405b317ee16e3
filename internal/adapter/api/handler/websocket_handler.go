package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "unimarket/internal/infrastructure/websocket"
	"unimarket/pkg/errors"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
}

var websocketHandler *WebSocketHandler

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func SetupWebSocketHandler(wsManager *ws.Manager) {
	websocketHandler = &WebSocketHandler{wsManager: wsManager}
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

// HandleWebSocket upgrades the request and registers the connection under
// the authenticated user. Auth happens in middleware before we get here.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
