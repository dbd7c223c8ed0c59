package assist

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleFeed streams assist events to a websocket client
// @Summary      Assist event feed
// @Description  Streams loop state changes, overlay replacements, and speech-log appends as JSON events.
// @Tags         assist
// @Success      101 {string} string "Switching protocols"
// @Router       /ws/assist [get]
func (h *Handler) HandleFeed(c echo.Context) error {
	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	events := h.feed.Subscribe()
	defer h.feed.Unsubscribe(events)

	done := make(chan struct{})
	go h.feedWritePump(ws, events, done)
	h.feedReadPump(ws, done)
	return nil
}

// feedReadPump drains the client side. The feed is one-way; inbound
// frames only serve pong handling and close detection.
func (h *Handler) feedReadPump(ws *websocket.Conn, done chan struct{}) {
	defer close(done)

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("feed read error", "error", err)
			}
			return
		}
	}
}

func (h *Handler) feedWritePump(ws *websocket.Conn, events <-chan Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("failed to marshal feed event", "error", err)
				continue
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
