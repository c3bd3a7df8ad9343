package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
)

// wsSelectionMessage is pushed to the browser whenever its session's
// selection changes.
type wsSelectionMessage struct {
	Type   string        `json:"type"`
	Detail domain.Detail `json:"detail"`
}

// WebSocketHandler returns a handler that upgrades to WebSocket and relays
// selection changes for the caller's session. The session id is carried in
// over the upgrade request's locals.
func WebSocketHandler(events ports.EventSubscriber) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		sid, _ := c.Locals(sessionIDLocal).(string)
		remoteAddr := c.RemoteAddr().String()
		if sid == "" {
			slog.Warn("ws connection without session", "remote", remoteAddr)
			return
		}

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()
		slog.Debug("ws client connected", "remote", remoteAddr, "session", sid)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		unsubscribe, err := events.SubscribeSelection(sid, func(d domain.Detail) {
			if err := writeJSON(wsSelectionMessage{Type: "selection", Detail: d}); err != nil {
				slog.Debug("ws write failed", "session", sid, "error", err)
			}
		})
		if err != nil {
			slog.Error("ws subscribe failed", "session", sid, "error", err)
			_ = writeJSON(map[string]string{"error": "subscribe failed"})
			return
		}
		defer unsubscribe()

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// The browser never sends anything meaningful; reading only detects
		// the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		slog.Debug("ws client disconnected", "remote", remoteAddr, "session", sid)
	}
}
