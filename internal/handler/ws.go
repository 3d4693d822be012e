// This file implements the websocket endpoint observers connect to for
// live claim notifications.  Each connection is one notifier subscription;
// events published while the socket is open are forwarded as JSON frames.
package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/cinetix/seat-reservation/internal/notifier"
)

const (
	// wsWriteWait bounds a single frame write so one dead connection
	// cannot wedge its delivery goroutine.
	wsWriteWait = 10 * time.Second
	// wsPongWait is how long to keep a connection without hearing a pong.
	wsPongWait = 60 * time.Second
	// wsPingPeriod must be shorter than wsPongWait.
	wsPingPeriod = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is served to browser clients on other origins; claim
	// authority comes from the JWT on the claim endpoint, the event feed
	// itself is public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades HTTP requests into notifier subscriptions.
type WSHandler struct {
	Hub *notifier.Hub
}

// NewWSHandler constructs a WSHandler.
func NewWSHandler(hub *notifier.Hub) *WSHandler {
	if hub == nil {
		panic("nil hub passed to NewWSHandler")
	}
	return &WSHandler{Hub: hub}
}

// Serve handles GET /v1/ws.  It subscribes the connection to the notifier
// hub and forwards events until the client disconnects.  An observer that
// connects after an event was published never sees it; clients are
// expected to fetch the seat map first and then listen.
func (h *WSHandler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}
	sub := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(sub)
	defer conn.Close()

	// Reader goroutine: the client sends nothing meaningful, but reading
	// is required to process control frames and notice disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				// Failed delivery to this observer only; the publisher
				// never learns about it.
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}
